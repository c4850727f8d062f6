package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/ledger"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryBackoff    = 200 * time.Millisecond
	maxRetryBackoff = 5 * time.Second
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveDecisions drops the cached balance of every employee named in a
// decision event so the next read reflects the committed ledger.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader MessageReader,
	balances ledger.BalanceService,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decisions")
	log.Info("leave decision consumer started")

	backoff := retryBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed",
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			if !sleep(ctx, backoff) {
				log.Info("leave decision consumer stopped")
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = retryBackoff

		handleMessage(ctx, reader, balances, log, msg)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	balances ledger.BalanceService,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.LeaveRequestDecidedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave decision event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	// The message stays uncommitted until the cache entry is gone; a stale
	// balance must not outlive a committed decision.
	backoff := retryBackoff
	for {
		err := balances.Invalidate(ctx, event.EmployeeID)
		if err == nil {
			break
		}
		log.Error("invalidate leave balance failed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("request_id", event.RequestID),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)
		if !sleep(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff)
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave decision message failed", zap.Error(err))
		return
	}

	log.Info("leave balance cache invalidated",
		zap.String("employee_id", event.EmployeeID),
		zap.String("kind", event.Kind),
		zap.String("status", event.Status),
		zap.Int("ledger_delta_days", event.LedgerDeltaDays),
	)
}
