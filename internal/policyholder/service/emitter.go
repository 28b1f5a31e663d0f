package service

import (
	"context"
	"log/slog"

	audit "cyberins/pkg/platform/audit"
	"cyberins/pkg/requestcontext"
)

// auditEmitter decorates events with request metadata and keeps audit
// fail-open: an append failure is logged, never propagated.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func newAuditEmitter(logger *slog.Logger, publisher AuditPublisher) *auditEmitter {
	return &auditEmitter{logger: logger, publisher: publisher}
}

func (e *auditEmitter) emit(ctx context.Context, action audit.AuditEvent, key, detail string) {
	if e.publisher == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Key:       key,
		Action:    string(action),
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := e.publisher.Emit(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "key", key, "error", err)
	}
}
