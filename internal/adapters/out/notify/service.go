package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"servicedesk/internal/core/domain/model/account"
	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/core/ports"
	"servicedesk/internal/pkg/metrics"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultConcurrency     = 8
	DefaultDeliveryTimeout = 5 * time.Second
)

var ErrServiceIsClosed = errors.New("notification service is closed")

type Options struct {
	// Concurrency bounds the deliveries writing to the store at once.
	Concurrency int64
	// Timeout bounds one delivery, store writes included.
	Timeout time.Duration
}

// Service implements ports.Notifier. Calls return immediately; the work runs
// on background goroutines detached from the caller's cancellation, so a
// finished request does not abort the notifications it triggered.
//
// Failures are logged and counted, never returned.
type Service struct {
	uowFactory ports.UnitOfWorkFactory
	hub        *Hub
	sem        *semaphore.Weighted
	timeout    time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

var _ ports.Notifier = (*Service)(nil)

func NewService(uowFactory ports.UnitOfWorkFactory, hub *Hub, opts Options, logger *slog.Logger) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDeliveryTimeout
	}
	return &Service{
		uowFactory: uowFactory,
		hub:        hub,
		sem:        semaphore.NewWeighted(opts.Concurrency),
		timeout:    opts.Timeout,
		logger:     logger.With("component", "notifier"),
	}
}

func (s *Service) Notify(ctx context.Context, recipientID kernel.ID, msg notification.Message) {
	s.spawn(ctx, msg, func(ctx context.Context) ([]kernel.ID, error) {
		return []kernel.ID{recipientID}, nil
	})
}

func (s *Service) NotifyRoles(ctx context.Context, roles []account.Role, msg notification.Message) {
	roles = append([]account.Role(nil), roles...)
	s.spawn(ctx, msg, func(ctx context.Context) ([]kernel.ID, error) {
		return s.uowFactory.Create().AccountRepository().ListActiveIDsByRoles(ctx, roles)
	})
}

// Close stops accepting notifications and waits for the ones in flight
// until ctx is done.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type recipientsFunc func(ctx context.Context) ([]kernel.ID, error)

func (s *Service) spawn(parent context.Context, msg notification.Message, recipients recipientsFunc) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.fail(parent, msg, ErrServiceIsClosed)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.timeout)
		defer cancel()

		if err := s.sem.Acquire(ctx, 1); err != nil {
			s.fail(ctx, msg, err)
			return
		}
		defer s.sem.Release(1)

		ids, err := recipients(ctx)
		if err != nil {
			s.fail(ctx, msg, err)
			return
		}
		if err = s.deliver(ctx, ids, msg); err != nil {
			s.fail(ctx, msg, err)
		}
	}()
}

// deliver stores one notification per recipient in a single transaction and
// publishes them once it has committed.
func (s *Service) deliver(ctx context.Context, recipientIDs []kernel.ID, msg notification.Message) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	stored := make([]*notification.Notification, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		n, err := notification.NewNotification(id, msg)
		if err != nil {
			return err
		}
		stored = append(stored, n)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, n := range stored {
		if err := uow.NotificationRepository().Add(ctx, n); err != nil {
			return err
		}
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range stored {
		result := "stored_only"
		if s.hub.Publish(n.RecipientID(), eventOf(n)) > 0 {
			result = "delivered"
		}
		metrics.NotificationsTotal.WithLabelValues(msg.Kind.String(), result).Inc()
	}

	s.logger.DebugContext(ctx, "Notification delivered",
		"kind", msg.Kind, "recipients", len(stored))
	return nil
}

func (s *Service) fail(ctx context.Context, msg notification.Message, err error) {
	metrics.NotificationsTotal.WithLabelValues(msg.Kind.String(), "failed").Inc()
	s.logger.ErrorContext(ctx, "Notification delivery failed", "kind", msg.Kind, "error", err)
}
