package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fixkit/repairdesk/internal/events"
)

// AuditService writes a structured log line for every store mutation
// event, giving the shop a durable trail of ticket activity in the
// service logs.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to store events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketEvent)
	a.dispatcher.Subscribe(events.EventTicketUpdated, a.handleTicketEvent)
	a.dispatcher.Subscribe(events.EventTicketRemoved, a.handleTicketEvent)
	a.dispatcher.Subscribe(events.EventDataImported, a.handleDataImported)
}

func (a *AuditService) handleTicketEvent(ctx context.Context, event events.Event) {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
}

func (a *AuditService) handleDataImported(ctx context.Context, event events.Event) {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload),
	)
}
