package producer

import (
	"context"
	"time"

	"go-hris-leave/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

// Relay moves committed outbox rows onto Kafka. Rows that fail to publish
// stay pending with a bumped retry count and are picked up on a later pass.
type Relay struct {
	repo     kafka.OutboxRepository
	writer   MessageWriter
	interval time.Duration
	batch    int
	logger   *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, interval time.Duration, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Relay{repo: repo, writer: writer, interval: interval, batch: batchSize, logger: l}
}

// Run flushes immediately and then on every tick until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("flush outbox failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// Flush publishes pending rows batch by batch until a short batch shows the
// backlog is drained or a batch makes no progress.
func (r *Relay) Flush(ctx context.Context) (sent, failed int, err error) {
	for ctx.Err() == nil {
		events, err := r.repo.ListPending(ctx, r.batch)
		if err != nil {
			return sent, failed, err
		}

		s, f := r.publishBatch(ctx, events)
		sent += s
		failed += f

		if len(events) < r.batch || s == 0 {
			break
		}
	}

	if sent > 0 || failed > 0 {
		r.logger.Info("outbox flushed", zap.Int("sent", sent), zap.Int("failed", failed))
	}
	return sent, failed, nil
}

func (r *Relay) publishBatch(ctx context.Context, events []kafka.OutboxEvent) (sent, failed int) {
	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			failed++
			log.Warn("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("record outbox failure failed", zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// Still pending, so the next pass publishes it again.
			failed++
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		sent++
		log.Debug("outbox event sent")
	}
	return sent, failed
}
