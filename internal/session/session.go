// Package session is the process-wide client context: one gateway, one
// view-state manager per collection, and the backend connectivity
// poller. It has a defined init (New) and teardown (Stop) instead of
// package-level mutable state.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/internal/config"
	"github.com/sharkgitz/eboxai/internal/derive"
	"github.com/sharkgitz/eboxai/internal/gateway"
	"github.com/sharkgitz/eboxai/internal/model"
	"github.com/sharkgitz/eboxai/internal/viewstate"
)

// Session composes the gateway with the per-collection managers. Pages
// do not share state with each other except through the gateway; each
// manager re-loads rather than trusting another page's copy.
type Session struct {
	Gateway   *gateway.Client
	Inbox     *viewstate.Manager[string, model.Email]
	Board     *viewstate.Manager[int, derive.BoardItem]
	FollowUps *viewstate.Manager[int, model.FollowUp]

	logger *zap.Logger

	mu      sync.Mutex
	online  bool
	stop    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

func New(cfg config.Config, logger *zap.Logger) *Session {
	gw := gateway.New(cfg.Backend.BaseURL, cfg.Backend.Timeout(), logger)

	s := &Session{
		Gateway: gw,
		logger:  logger,
		stop:    make(chan struct{}),
	}

	s.Inbox = viewstate.NewManager(
		"inbox",
		func(e model.Email) string { return e.ID },
		func(ctx context.Context) ([]model.Email, error) {
			return gw.ListEmails(ctx, gateway.SortByDate)
		},
		func(ctx context.Context, id string) (model.Email, error) {
			detail, err := gw.GetEmailDetail(ctx, id)
			if err != nil {
				return model.Email{}, err
			}
			return detail.Email, nil
		},
	)

	// The contract has no single-item GET for action items or
	// follow-ups, so their rollback path re-lists and plucks the record.
	s.Board = viewstate.NewManager(
		"board",
		func(it derive.BoardItem) int { return it.ID },
		func(ctx context.Context) ([]derive.BoardItem, error) {
			emails, err := gw.ListEmails(ctx, gateway.SortByDate)
			if err != nil {
				return nil, err
			}
			return derive.FlattenActionItems(emails), nil
		},
		func(ctx context.Context, id int) (derive.BoardItem, error) {
			emails, err := gw.ListEmails(ctx, gateway.SortByDate)
			if err != nil {
				return derive.BoardItem{}, err
			}
			for _, it := range derive.FlattenActionItems(emails) {
				if it.ID == id {
					return it, nil
				}
			}
			return derive.BoardItem{}, viewstate.ErrNotFound
		},
	)

	s.FollowUps = viewstate.NewManager(
		"followups",
		func(f model.FollowUp) int { return f.ID },
		gw.ListFollowUps,
		func(ctx context.Context, id int) (model.FollowUp, error) {
			followups, err := gw.ListFollowUps(ctx)
			if err != nil {
				return model.FollowUp{}, err
			}
			for _, f := range followups {
				if f.ID == id {
					return f, nil
				}
			}
			return model.FollowUp{}, viewstate.ErrNotFound
		},
	)

	return s
}

// StartStatusPoller begins pinging the backend at the given interval,
// keeping Online fresh. Safe to skip entirely for one-shot commands.
func (s *Session) StartStatusPoller(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.pollOnce(interval)
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.pollOnce(interval)
			}
		}
	}()
}

func (s *Session) pollOnce(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.Gateway.Ping(ctx)

	s.mu.Lock()
	was := s.online
	s.online = err == nil
	now := s.online
	s.mu.Unlock()

	if was != now {
		s.logger.Info("backend connectivity changed",
			zap.Bool("online", now),
			zap.Error(err))
	}
}

// Online reports the last observed backend connectivity.
func (s *Session) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Stop tears the session down. Idempotent.
func (s *Session) Stop() {
	s.stopped.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}
