package usecase

import (
	"context"

	"github.com/NasaVasa/haltwatch/internal/domain"
	"go.uber.org/zap"
)

const (
	SuccessSubject = "Automated Success Notification - haltwatch"
	ErrorSubject   = "Automated Error Notification - haltwatch"
)

// FanoutNotifier delivers to every channel. Delivery is best effort: failures
// are logged and never returned.
type FanoutNotifier struct {
	channels []domain.Notifier
	logger   *zap.Logger
}

func NewFanoutNotifier(logger *zap.Logger, channels ...domain.Notifier) *FanoutNotifier {
	return &FanoutNotifier{channels: channels, logger: logger}
}

func (f *FanoutNotifier) Notify(ctx context.Context, subject, body string) error {
	for _, channel := range f.channels {
		if err := channel.Notify(ctx, subject, body); err != nil {
			f.logger.Warn("failed to send notification", zap.String("subject", subject), zap.Error(err))
		}
	}
	return nil
}

// LogNotifier writes notifications to the log; used when no channel is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, subject, body string) error {
	n.logger.Info("notification", zap.String("subject", subject), zap.String("body", body))
	return nil
}
