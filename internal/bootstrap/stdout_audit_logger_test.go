package bootstrap_test

import (
	"context"
	"testing"

	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	auditLogger := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithEmployeeID(ctx, "emp-1")
	auditLogger.Log(ctx, bootstrap.AuditLog{
		Action:  "LEAVE_BALANCE_RESERVED",
		Message: "vacation days reserved",
		Meta:    map[string]any{"days": 3},
	})

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "audit event", entries[0].Message)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "emp-1", fields["actor_id"])
	assert.Equal(t, "LEAVE_BALANCE_RESERVED", fields["action"])
}
