package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/saint-brief/internal/pkg/logger"
)

// SubmissionArchive guarda os briefs concluídos. Archive deve ser idempotente
// pelo BriefID, porque a mesma mensagem pode chegar mais de uma vez.
type SubmissionArchive interface {
	Archive(ctx context.Context, payload BriefCompletedPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Archive SubmissionArchive
	Log     *logger.Logger
}

func NewWorker(ch *amqp.Channel, archive SubmissionArchive, log *logger.Logger) *Worker {
	return &Worker{Channel: ch, Archive: archive, Log: log}
}

// Start registra o consumidor e processa até o contexto ser cancelado.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Log.Info("🐇 worker aguardando na fila", "queue", queueName)
	w.Run(ctx, msgs)
	return nil
}

func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			w.handle(ctx, d)
		}
	}
}

var errMalformed = errors.New("mensagem malformada")

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	payload, err := decodePayload(d.Body)
	if err != nil {
		w.Log.Error("❌ [WORKER] mensagem rejeitada", "error", err)
		// sem requeue para não travar a fila; vai para a DLQ
		_ = d.Nack(false, false)
		return
	}

	if err := w.Archive.Archive(ctx, payload); err != nil {
		w.Log.Error("❌ [WORKER] falha ao arquivar brief", "brief_id", payload.BriefID, "error", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	w.Log.Info("✅ [WORKER] brief arquivado", "brief_id", payload.BriefID, "client", payload.FullName)
	_ = d.Ack(false)
}

func decodePayload(body []byte) (BriefCompletedPayload, error) {
	var payload BriefCompletedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if payload.BriefID == "" || len(payload.Brief) == 0 {
		return payload, fmt.Errorf("%w: brief_id ou brief ausente", errMalformed)
	}
	return payload, nil
}
