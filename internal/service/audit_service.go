package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/warden-register/internal/events"
)

// AuditService writes a structured audit line for every register mutation.
// The audit trail is append-only log output; no history is persisted, in
// keeping with the register's no-history rule.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventWardenCheckedIn, a.handleEvent)
	a.dispatcher.Subscribe(events.EventWardenLocationChanged, a.handleEvent)
	a.dispatcher.Subscribe(events.EventWardenDetailsAmended, a.handleEvent)
	a.dispatcher.Subscribe(events.EventWardenCheckedOut, a.handleEvent)
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("staff_number", event.StaffNumber),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
