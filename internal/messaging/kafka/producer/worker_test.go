package producer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/messaging/kafka"
	kafkaMock "go-hris-leave/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failFor map[string]bool
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func decidedEvent(id, employeeID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:          id,
		AggregateID: employeeID,
		Topic:       events.LeaveRequestDecidedTopic,
		EventType:   events.EventTypeLeaveRequestDecided,
		Payload:     []byte(`{}`),
	}
}

func TestRelay_Flush(t *testing.T) {
	ctx := context.Background()

	t.Run("marks published events sent and failed ones for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"emp-2": true}}

		repo.EXPECT().ListPending(ctx, batchSize).
			Return([]kafka.OutboxEvent{decidedEvent("evt-1", "emp-1"), decidedEvent("evt-2", "emp-2")}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "evt-2", "broker unavailable").Return(nil)

		sent, failed, err := NewRelay(repo, writer, 0, zap.NewNop()).Flush(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, 1, failed)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "emp-1", string(writer.written[0].Key))
		assert.Equal(t, events.LeaveRequestDecidedTopic, writer.written[0].Topic)
	})

	t.Run("drains a backlog larger than one batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		relay := NewRelay(repo, writer, 0, zap.NewNop())
		relay.batch = 2

		first := []kafka.OutboxEvent{decidedEvent("evt-1", "emp-1"), decidedEvent("evt-2", "emp-2")}
		second := []kafka.OutboxEvent{decidedEvent("evt-3", "emp-3")}
		gomock.InOrder(
			repo.EXPECT().ListPending(ctx, 2).Return(first, nil),
			repo.EXPECT().ListPending(ctx, 2).Return(second, nil),
		)
		repo.EXPECT().MarkSent(ctx, gomock.Any()).Return(nil).Times(3)

		sent, failed, err := relay.Flush(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, sent)
		assert.Zero(t, failed)
	})

	t.Run("stops when a full batch makes no progress", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{}}

		relay := NewRelay(repo, writer, 0, zap.NewNop())
		relay.batch = 2

		stuck := make([]kafka.OutboxEvent, 2)
		for i := range stuck {
			stuck[i] = decidedEvent(fmt.Sprintf("evt-%d", i), fmt.Sprintf("emp-%d", i))
			writer.failFor[stuck[i].AggregateID] = true
		}
		repo.EXPECT().ListPending(ctx, 2).Return(stuck, nil).Times(1)
		repo.EXPECT().MarkFailed(ctx, gomock.Any(), gomock.Any()).Return(nil).Times(2)

		sent, failed, err := relay.Flush(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
		assert.Equal(t, 2, failed)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, _, err := NewRelay(repo, &fakeWriter{}, 0, zap.NewNop()).Flush(ctx)

		assert.Error(t, err)
	})
}
