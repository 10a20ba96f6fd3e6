package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
)

// NotificationFeed keeps the last admin notifications in a ring buffer
// and logs each one as it arrives.
type NotificationFeed struct {
	mu     sync.Mutex
	buf    []domain.Notification
	next   int
	full   bool
	logger *slog.Logger
}

var (
	_ ports.Notifier         = (*NotificationFeed)(nil)
	_ ports.NotificationFeed = (*NotificationFeed)(nil)
)

// NewNotificationFeed creates a feed holding up to size notifications
func NewNotificationFeed(size int, logger *slog.Logger) *NotificationFeed {
	if size <= 0 {
		size = 50
	}
	return &NotificationFeed{
		buf:    make([]domain.Notification, size),
		logger: logger.With(slog.String("service", "notifications")),
	}
}

// Notify records n
func (f *NotificationFeed) Notify(ctx context.Context, n domain.Notification) {
	level := slog.LevelInfo
	if n.Level == domain.NotificationError {
		level = slog.LevelWarn
	}
	f.logger.Log(ctx, level, "admin notification",
		slog.String("level", string(n.Level)),
		slog.String("message", n.Message))

	f.mu.Lock()
	defer f.mu.Unlock()

	f.buf[f.next] = n
	f.next = (f.next + 1) % len(f.buf)
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns up to limit notifications, newest first.
// A non-positive limit returns everything held.
func (f *NotificationFeed) Recent(limit int) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := f.next
	if f.full {
		count = len(f.buf)
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	out := make([]domain.Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + len(f.buf)) % len(f.buf)
		out = append(out, f.buf[idx])
	}
	return out
}
