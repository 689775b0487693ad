package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/config"
)

// Worker consumes the job queue and publishes to the result queue.
type Worker struct {
	cfg     config.QueueConfig
	handler *Handler
}

// NewWorker creates a Worker.
func NewWorker(cfg config.QueueConfig, handler *Handler) *Worker {
	return &Worker{cfg: cfg, handler: handler}
}

// Run connects, declares both queues and consumes until ctx is done or the channel closes.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.URL == "" {
		return errors.New("queue URL is not configured")
	}

	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	for _, name := range []string{w.cfg.JobQueue, w.cfg.ResultQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}
	if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := ch.Consume(w.cfg.JobQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", w.cfg.JobQueue, err)
	}

	log.Info().
		Str("queue", w.cfg.JobQueue).
		Int("prefetch", w.cfg.Prefetch).
		Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopping")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.deliver(ctx, ch, d)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, ch *amqp.Channel, d amqp.Delivery) {
	result := w.handler.Handle(ctx, d.Body)
	if result.Status == StatusRejected {
		if err := d.Nack(false, false); err != nil {
			log.Error().Err(err).Msg("failed to nack message")
		}
		return
	}

	if err := w.publish(ctx, ch, result); err != nil {
		log.Error().Err(err).Str("job_id", result.JobID).Msg("failed to publish result")
		if err := d.Nack(false, true); err != nil {
			log.Error().Err(err).Msg("failed to nack message")
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("failed to ack message")
	}
}

func (w *Worker) publish(ctx context.Context, ch *amqp.Channel, result Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return ch.PublishWithContext(ctx, "", w.cfg.ResultQueue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: result.JobID,
		Body:          body,
	})
}
