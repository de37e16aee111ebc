package draftstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/saint-brief/internal/usecase"
)

const redisKeyPrefix = "saint:brief:draft:"

// RedisStore grava cada rascunho numa chave com TTL; a expiração fica a cargo
// do próprio Redis.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient abre o cliente e confere a conexão com PING.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler rascunho no Redis: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, record []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, record, s.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar rascunho no Redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("erro ao apagar rascunho no Redis: %w", err)
	}
	return nil
}
