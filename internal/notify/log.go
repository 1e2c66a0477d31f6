package notify

import (
	"github.com/prometheus/client_golang/prometheus"

	"agriteranga-courier/internal/logx"
)

// LogNotifier writes notifications to the structured log and counts them.
type LogNotifier struct {
	logger  logx.Logger
	counter prometheus.Counter
}

// NewLogNotifier creates a LogNotifier. The counter may be nil.
func NewLogNotifier(logger logx.Logger, counter prometheus.Counter) *LogNotifier {
	return &LogNotifier{logger: logger, counter: counter}
}

// Notify logs the notification at a level matching its severity.
func (l *LogNotifier) Notify(n Notification) {
	if l.counter != nil {
		l.counter.Inc()
	}
	fields := []logx.Field{
		logx.String("notification_id", n.ID),
		logx.String("level", string(n.Level)),
		logx.Time("at", n.At),
	}
	if n.Level == LevelError {
		l.logger.Warn(n.Message, fields...)
		return
	}
	l.logger.Info(n.Message, fields...)
}
