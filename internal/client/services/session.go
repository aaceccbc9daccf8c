package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/affiliatepro/internal/client/models"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

// UserLookup resolves a user id to its current record.
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// Session holds the active user, if any.
//
// The snapshot is persisted under currentUser so a restart can find the
// previous user again, but only the id is trusted: Restore reloads the record
// from the directory.
type Session struct {
	mu         sync.Mutex
	repo       documents.Repository
	membership MembershipCatalog
	logger     logging.Logger
	current    *models.User
}

func NewSession(repo documents.Repository, membership MembershipCatalog, logger logging.Logger) *Session {
	return &Session{repo: repo, membership: membership, logger: logger}
}

// Current returns a copy of the active user.
func (s *Session) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Start replaces any active user with u.
func (s *Session) Start(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(ctx, u)
}

func (s *Session) start(ctx context.Context, u models.User) error {
	if err := documents.SetJSON(ctx, s.repo, documents.KeyCurrentUser, u); err != nil {
		return err
	}
	s.current = &u
	return nil
}

// End clears the active user.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.end(ctx)
}

func (s *Session) end(ctx context.Context) error {
	if err := s.repo.Delete(ctx, documents.KeyCurrentUser); err != nil {
		return err
	}
	s.current = nil
	return nil
}

// Refresh replaces the cached copy when u is the active user and is a
// no-op otherwise.
func (s *Session) Refresh(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != u.ID {
		return nil
	}
	return s.start(ctx, u)
}

// Restore re-derives the session from the stored snapshot's id. A missing or
// unreadable snapshot, or one pointing at a deleted user, leaves the
// session empty.
//
// The directory is queried without holding the session lock: directory
// mutations call Refresh while holding their own lock.
func (s *Session) Restore(ctx context.Context, users UserLookup) (*models.User, error) {
	id, err := s.snapshotID(ctx)
	if err != nil || id == "" {
		return nil, err
	}

	u, err := users.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if errors.Is(err, common.ErrUserNotFound) {
		s.logger.Info(ctx, "session user no longer exists", "user_id", id)
		return nil, s.end(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := s.start(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// snapshotID returns the id of the persisted session user, or "" when there
// is none. An unreadable snapshot is removed.
func (s *Session) snapshotID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap models.User
	found, err := documents.GetJSON(ctx, s.repo, documents.KeyCurrentUser, &snap)
	if err != nil {
		if !errors.Is(err, common.ErrSerialization) {
			return "", err
		}
		s.logger.Warn(ctx, "invalid session snapshot treated as absent", "error", err)
		return "", s.end(ctx)
	}
	if !found || snap.ID == "" {
		s.current = nil
		return "", nil
	}
	return snap.ID, nil
}

// CommissionRate is the active user's rate, or the lowest tier's rate when
// nobody is logged in.
func (s *Session) CommissionRate(ctx context.Context) (int, error) {
	tier := models.LowestTier()
	if u, ok := s.Current(); ok {
		tier = u.Level
	}
	return s.membership.RateOrDefault(ctx, tier)
}

// Require returns the active user or common.ErrNotLoggedIn.
func (s *Session) Require() (models.User, error) {
	u, ok := s.Current()
	if !ok {
		return models.User{}, common.ErrNotLoggedIn
	}
	return u, nil
}
