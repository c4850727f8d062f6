package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hris-leave/internal/events"
	ledgerMock "go-hris-leave/internal/ledger/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	fetchErrs []error
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafkago.Message{}, err
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func decidedMessage(t *testing.T, employeeID string) kafkago.Message {
	payload, err := json.Marshal(events.LeaveRequestDecidedEvent{
		EventType:       events.EventTypeLeaveRequestDecided,
		RequestID:       "req-1",
		Kind:            events.KindVacation,
		EmployeeID:      employeeID,
		Status:          "APPROVED",
		LedgerDeltaDays: 5,
	})
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.LeaveRequestDecidedTopic, Value: payload}
}

func TestConsumeLeaveDecisions(t *testing.T) {
	retryBackoff, maxRetryBackoff = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() {
		retryBackoff, maxRetryBackoff = 200*time.Millisecond, 5*time.Second
	})

	t.Run("invalidates and commits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		balances := ledgerMock.NewMockBalanceService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{decidedMessage(t, "emp-1")}, cancel: cancel}

		balances.EXPECT().Invalidate(gomock.Any(), "emp-1").Return(nil)

		ConsumeLeaveDecisions(ctx, reader, balances, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable message is committed and skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		balances := ledgerMock.NewMockBalanceService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{{Value: []byte("not-json")}}, cancel: cancel}

		ConsumeLeaveDecisions(ctx, reader, balances, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("invalidate failure is retried before commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		balances := ledgerMock.NewMockBalanceService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{decidedMessage(t, "emp-2")}, cancel: cancel}

		gomock.InOrder(
			balances.EXPECT().Invalidate(gomock.Any(), "emp-2").Return(errors.New("redis down")).Times(2),
			balances.EXPECT().Invalidate(gomock.Any(), "emp-2").Return(nil),
		)

		ConsumeLeaveDecisions(ctx, reader, balances, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("shutdown during invalidate retry leaves message uncommitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		balances := ledgerMock.NewMockBalanceService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{decidedMessage(t, "emp-3")}, cancel: cancel}

		balances.EXPECT().Invalidate(gomock.Any(), "emp-3").
			DoAndReturn(func(context.Context, string) error {
				cancel()
				return errors.New("redis down")
			})

		ConsumeLeaveDecisions(ctx, reader, balances, zap.NewNop())

		assert.Empty(t, reader.committed)
	})

	t.Run("fetch errors back off and recover", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		balances := ledgerMock.NewMockBalanceService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{
			fetchErrs: []error{errors.New("broker gone"), errors.New("broker gone")},
			msgs:      []kafkago.Message{decidedMessage(t, "emp-4")},
			cancel:    cancel,
		}

		balances.EXPECT().Invalidate(gomock.Any(), "emp-4").Return(nil)

		start := time.Now()
		ConsumeLeaveDecisions(ctx, reader, balances, zap.NewNop())

		assert.Len(t, reader.committed, 1)
		assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
	})
}
