package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher writes events to the log. Used when no brokers are configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) Publish(_ context.Context, event AppointmentEvent) error {
	p.log.Info("Appointment event",
		zap.String("type", event.Type),
		zap.String("appointment_id", event.AppointmentID),
		zap.String("date", event.Date),
		zap.String("time", event.Time),
		zap.String("status", string(event.Status)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
