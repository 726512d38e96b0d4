package notify

import (
	"context"

	"tablebook/internal/domain"

	"go.uber.org/zap"
)

// LogSender is the fallback when AMQP_URL is unset: it records the message
// instead of delivering it, so local development works without a broker.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) ReservationConfirmed(ctx context.Context, r *domain.Reservation, timeLabel string) error {
	s.log(messageFor(KindConfirmation, r, timeLabel))
	return nil
}

func (s *LogSender) ReservationCancelled(ctx context.Context, r *domain.Reservation, timeLabel string) error {
	s.log(messageFor(KindCancellation, r, timeLabel))
	return nil
}

func (s *LogSender) log(m Message) {
	s.logger.Info("sms notification (not delivered, no broker configured)",
		zap.String("kind", m.Kind),
		zap.String("reservation_id", m.ReservationID),
		zap.String("phone", m.Phone),
		zap.String("date", m.Date),
		zap.String("time", m.Time),
	)
}
