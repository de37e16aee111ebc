package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// BriefCompletedPayload é o evento publicado depois de um envio bem-sucedido.
type BriefCompletedPayload struct {
	BriefID        string          `json:"brief_id"`
	FullName       string          `json:"full_name"`
	CommercialName string          `json:"commercial_name"`
	Phone          string          `json:"phone"`
	SquareMeters   string          `json:"square_meters"`
	Budget         string          `json:"budget"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	Origin         string          `json:"origin"`
	Brief          json.RawMessage `json:"brief"`
}

// Publisher é o subconjunto de *amqp.Channel usado pelo producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishBriefCompleted(ctx context.Context, payload BriefCompletedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.BriefID,
			Timestamp:    payload.SubmittedAt,
			Type:         RoutingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
