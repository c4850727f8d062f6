package bootstrap

import "context"

// AuditLog is one structured audit event. Action is an UPPER_SNAKE verb such
// as LEAVE_BALANCE_RESERVED.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type NopAuditLogger struct{}

func (NopAuditLogger) Log(context.Context, AuditLog) {}
