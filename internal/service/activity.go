package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Davi3103/chamados4/internal/events"
	"github.com/Davi3103/chamados4/internal/repository"
)

// ActivityRecorder subscribes to domain events and appends them to the
// activity log sink.
type ActivityRecorder struct {
	activity repository.ActivityLogRepository
	logger   *zap.Logger
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(activity repository.ActivityLogRepository, logger *zap.Logger) *ActivityRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRecorder{activity: activity, logger: logger}
}

// RegisterHandlers subscribes the recorder to the dispatcher.
func (a *ActivityRecorder) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, a.handle)
}

func (a *ActivityRecorder) handle(ctx context.Context, event events.Event) error {
	if err := a.activity.Append(ctx, string(event.Type), event.Message, event.ActorID); err != nil {
		// the log is best-effort, a failed append never fails the request
		a.logger.Warn("activity log append failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
	return nil
}
