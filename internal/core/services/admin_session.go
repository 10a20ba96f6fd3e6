// internal/core/services/admin_session.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/ports"
	"github.com/wsvendas/motostock/internal/pkg/config"
)

// PartialReorderError reports a sequential reorder that stopped after
// persisting only a prefix of the new order. Nothing is rolled back.
type PartialReorderError struct {
	Persisted int
	Total     int
	Err       error
}

func (e *PartialReorderError) Error() string {
	return fmt.Sprintf("reorder persisted %d of %d positions: %v", e.Persisted, e.Total, e.Err)
}

func (e *PartialReorderError) Unwrap() error {
	return e.Err
}

// AdminSession is the admin inventory list: an ordered in-memory copy of
// every motorcycle, mutated locally first and then written to the store.
// Failed writes are reconciled by reloading from the store.
type AdminSession struct {
	mu     sync.Mutex
	items  []domain.Motorcycle
	loaded bool

	repo        ports.MotorcycleRepository
	notifier    ports.Notifier
	invalidator ports.CatalogInvalidator
	reorderMode string
	now         func() time.Time
	logger      *slog.Logger
}

// Statically assert that *AdminSession implements the AdminService interface.
var _ ports.AdminService = (*AdminSession)(nil)

// AdminOption configures an AdminSession
type AdminOption func(*AdminSession)

// WithReorderMode selects atomic or sequential reorder persistence
func WithReorderMode(mode string) AdminOption {
	return func(s *AdminSession) {
		s.reorderMode = mode
	}
}

// WithClock overrides the notification timestamp source
func WithClock(now func() time.Time) AdminOption {
	return func(s *AdminSession) {
		s.now = now
	}
}

// NewAdminSession creates the admin list manager. invalidator may be nil.
func NewAdminSession(
	repo ports.MotorcycleRepository,
	notifier ports.Notifier,
	invalidator ports.CatalogInvalidator,
	logger *slog.Logger,
	opts ...AdminOption,
) *AdminSession {
	s := &AdminSession{
		repo:        repo,
		notifier:    notifier,
		invalidator: invalidator,
		reorderMode: config.ReorderAtomic,
		now:         time.Now,
		logger:      logger.With(slog.String("service", "admin_session")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the list with every stored row in admin order.
// On failure the previous list is kept.
func (s *AdminSession) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Items returns a copy of the current list
func (s *AdminSession) Items() []domain.Motorcycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Motorcycle, len(s.items))
	copy(out, s.items)
	return out
}

// ToggleSold flips the sold flag locally, then persists it
func (s *AdminSession) ToggleSold(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("motorcycle %s: %w", id, domain.ErrNotFound)
	}

	s.items[idx].Sold = !s.items[idx].Sold
	sold := s.items[idx].Sold
	title := s.items[idx].Title()

	if err := s.repo.SetSold(ctx, id, sold); err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to update status of "+title)
		s.reconcile(ctx)
		return fmt.Errorf("failed to toggle sold: %w", err)
	}

	if sold {
		s.notify(ctx, domain.NotificationSuccess, title+" marked as sold")
	} else {
		s.notify(ctx, domain.NotificationSuccess, title+" marked as available")
	}
	s.invalidate(ctx)
	return nil
}

// Reorder moves the item at from to position to and renumbers the whole list
func (s *AdminSession) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	moved, err := domain.MoveItem(s.items, from, to)
	if err != nil {
		return fmt.Errorf("reorder %d -> %d: %w", from, to, err)
	}
	for i := range moved {
		moved[i].DisplayOrder = i
	}
	s.items = moved
	assignments := domain.AssignOrder(moved)

	if s.reorderMode == config.ReorderSequential {
		if err := s.persistSequential(ctx, assignments); err != nil {
			return err
		}
	} else if err := s.repo.ApplyOrder(ctx, assignments); err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to save the new order")
		s.reconcile(ctx)
		return fmt.Errorf("failed to persist order: %w", err)
	}

	s.notify(ctx, domain.NotificationSuccess, "Order saved")
	s.invalidate(ctx)
	return nil
}

// persistSequential writes one position at a time in list order and stops
// at the first failure. The in-memory order is kept either way.
func (s *AdminSession) persistSequential(ctx context.Context, assignments []domain.OrderAssignment) error {
	for n, a := range assignments {
		if err := s.repo.SetDisplayOrder(ctx, a.ID, a.DisplayOrder); err != nil {
			s.notify(ctx, domain.NotificationError,
				fmt.Sprintf("Failed to save the new order (%d of %d saved)", n, len(assignments)))
			return &PartialReorderError{Persisted: n, Total: len(assignments), Err: err}
		}
	}
	return nil
}

// Upsert validates the form, then updates editingID or inserts a new row.
// The list is reloaded afterwards to pick up store-assigned values.
func (s *AdminSession) Upsert(ctx context.Context, form domain.MotorcycleForm, editingID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	var (
		err     error
		success string
	)
	if editingID != nil {
		err = s.repo.Update(ctx, *editingID, &form)
		success = "Motorcycle updated"
	} else {
		_, err = s.repo.Insert(ctx, &form)
		success = "Motorcycle created"
	}

	if err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to save motorcycle")
		s.reconcile(ctx)
		return fmt.Errorf("failed to save motorcycle: %w", err)
	}

	s.notify(ctx, domain.NotificationSuccess, success)
	s.invalidate(ctx)
	s.reconcile(ctx)
	return nil
}

// Remove deletes the row and drops it from the list.
// Its photos stay in the photo store.
func (s *AdminSession) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to delete motorcycle")
		return fmt.Errorf("failed to delete motorcycle: %w", err)
	}

	if idx := s.indexOf(id); idx >= 0 {
		s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	}

	s.notify(ctx, domain.NotificationSuccess, "Motorcycle deleted")
	s.invalidate(ctx)
	return nil
}

func (s *AdminSession) load(ctx context.Context) error {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		s.notify(ctx, domain.NotificationError, "Failed to load inventory")
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	s.items = items
	s.loaded = true
	s.logger.DebugContext(ctx, "inventory loaded", slog.Int("count", len(items)))
	return nil
}

func (s *AdminSession) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

// reconcile reloads after a write; a failed reload is already notified
func (s *AdminSession) reconcile(ctx context.Context) {
	if err := s.load(ctx); err != nil {
		s.logger.WarnContext(ctx, "reconcile failed", slog.Any("error", err))
	}
}

func (s *AdminSession) indexOf(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *AdminSession) notify(ctx context.Context, level domain.NotificationLevel, msg string) {
	s.notifier.Notify(ctx, domain.Notification{Level: level, Message: msg, At: s.now()})
}

func (s *AdminSession) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateCatalog(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate catalog cache", slog.Any("error", err))
	}
}

// IsPartialReorder reports whether err came from an interrupted sequential reorder
func IsPartialReorder(err error) bool {
	var pe *PartialReorderError
	return errors.As(err, &pe)
}
