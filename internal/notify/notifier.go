package notify

import (
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification for the dashboard panel.
type Level string

// List of notification levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single dismissible message for the courier.
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications emitted by the delivery store.
// Implementations must be safe for concurrent use and must not block
// the caller on slow transports.
type Notifier interface {
	Notify(n Notification)
}

// New builds a notification with a fresh id and timestamp.
func New(level Level, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Success emits a success notification.
func Success(n Notifier, message string) {
	if n == nil {
		return
	}
	n.Notify(New(LevelSuccess, message))
}

// Error emits an error notification.
func Error(n Notifier, message string) {
	if n == nil {
		return
	}
	n.Notify(New(LevelError, message))
}

// Fanout duplicates every notification to all targets.
type Fanout []Notifier

// Notify sends the notification to every target.
func (f Fanout) Notify(n Notification) {
	for _, t := range f {
		if t != nil {
			t.Notify(n)
		}
	}
}

// Nop returns a Notifier that drops everything.
func Nop() Notifier { return nopNotifier{} }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
