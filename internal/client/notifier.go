package client

import (
	"context"
	"log/slog"
	"sync"
)

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a short user-facing notice.
type Toast struct {
	Level   ToastLevel
	Title   string
	Message string
}

type Notifier interface {
	Notify(t Toast)
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(t Toast) {
	level := slog.LevelInfo
	if t.Level == ToastError {
		level = slog.LevelWarn
	}
	n.logger.Log(context.Background(), level, "toast", "level", string(t.Level), "title", t.Title, "message", t.Message)
}

// RecordingNotifier keeps every toast; useful for tests and for batching output in the CLI.
type RecordingNotifier struct {
	mu     sync.Mutex
	toasts []Toast
}

func (n *RecordingNotifier) Notify(t Toast) {
	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	n.mu.Unlock()
}

func (n *RecordingNotifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Toast(nil), n.toasts...)
}
