// Package delivery forwards pending platform notifications to the channel
// registered for their platform.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/platform"
	"github.com/google/uuid"
)

// Sender delivers a notification and returns what the platform answered.
type Sender interface {
	Channel() string
	Send(ctx context.Context, n *models.PlatformNotification) (map[string]any, error)
}

// Store is the slice of the notification service the dispatcher needs.
type Store interface {
	Pending(limit int) ([]models.PlatformNotification, error)
	RecordDelivery(id uuid.UUID, status models.NotificationStatus, response any) error
}

type Dispatcher struct {
	store     Store
	platforms *platform.Registry
	batch     int

	mu      sync.RWMutex
	senders map[string]Sender

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewDispatcher(store Store, platforms *platform.Registry, batch int) *Dispatcher {
	if batch <= 0 {
		batch = 20
	}
	return &Dispatcher{
		store:     store,
		platforms: platforms,
		batch:     batch,
		senders:   make(map[string]Sender),
	}
}

func (d *Dispatcher) Register(s Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.senders[s.Channel()] = s
}

func (d *Dispatcher) sender(p models.Platform) (Sender, string) {
	channel := d.platforms.Channel(p)
	if channel == "" {
		return nil, ""
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.senders[channel], channel
}

// RunOnce delivers one batch of pending notifications.
func (d *Dispatcher) RunOnce(ctx context.Context) (delivered, failed int, err error) {
	pending, err := d.store.Pending(d.batch)
	if err != nil {
		return 0, 0, fmt.Errorf("load pending notifications: %w", err)
	}

	for i := range pending {
		if ctx.Err() != nil {
			return delivered, failed, ctx.Err()
		}
		n := &pending[i]

		status, response := d.deliver(ctx, n)
		if err := d.store.RecordDelivery(n.ID, status, response); err != nil {
			slog.Warn("failed to record delivery", "notification_id", n.ID, "error", err)
			continue
		}
		if status == models.NotificationAccepted {
			delivered++
		} else {
			failed++
		}
	}
	return delivered, failed, nil
}

func (d *Dispatcher) deliver(ctx context.Context, n *models.PlatformNotification) (models.NotificationStatus, map[string]any) {
	s, channel := d.sender(n.Platform)
	if s == nil {
		reason := fmt.Sprintf("no delivery channel configured for %s", n.Platform)
		if channel != "" {
			reason = fmt.Sprintf("delivery channel %q is not enabled", channel)
		}
		return models.NotificationFailed, map[string]any{"error": reason}
	}

	response, err := s.Send(ctx, n)
	if err != nil {
		slog.Warn("notification delivery failed", "notification_id", n.ID, "channel", channel, "error", err)
		return models.NotificationFailed, map[string]any{"channel": channel, "error": err.Error()}
	}
	slog.Info("notification delivered", "notification_id", n.ID, "channel", channel)
	return models.NotificationAccepted, response
}

// Start runs RunOnce every interval until Stop is called.
func (d *Dispatcher) Start(interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	d.stop = make(chan struct{})
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				delivered, failed, err := d.RunOnce(ctx)
				cancel()
				if err != nil {
					slog.Error("notification dispatch failed", "error", err)
				} else if delivered+failed > 0 {
					slog.Info("notification dispatch", "delivered", delivered, "failed", failed)
				}
			case <-d.stop:
				return
			}
		}
	}()
}

func (d *Dispatcher) Stop() {
	if d.stop == nil {
		return
	}
	close(d.stop)
	d.wg.Wait()
	d.stop = nil
}
