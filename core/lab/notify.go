package lab

// Level classifies a user-facing notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier is the capability used to surface lab lifecycle events to the
// user. Rendering is owned by the embedding application.
type Notifier interface {
	Notify(message string, level Level)
}
