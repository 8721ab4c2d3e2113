package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/storage"
)

// Keys of the two persisted entries.
const (
	UserKey  = "usuario"
	TokenKey = "token"
)

// Session is the current identity. The zero value is a guest.
type Session struct {
	User  *models.User
	Token string
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Store owns the one active session and keeps it in durable state.
type Store struct {
	kv  storage.KeyValue
	log *zap.Logger
	now func() time.Time

	mu      sync.RWMutex
	current Session
}

// NewStore returns a guest session backed by kv. Call Restore to load
// persisted state.
func NewStore(kv storage.KeyValue, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log, now: time.Now}
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Token is the bearer token, empty for guests.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Restore loads the persisted user and token. Anything missing, unreadable or
// malformed yields a guest session; Restore never fails startup. A JWT whose
// exp has passed counts as invalidated and both entries are dropped.
func (s *Store) Restore(ctx context.Context) Session {
	user, userOK := s.readUser(ctx)
	token, tokenOK := s.readToken(ctx)

	restored := Session{}
	switch {
	case !userOK || !tokenOK:
		if userOK || tokenOK {
			s.log.Info("persisted session is incomplete; starting as guest",
				zap.Bool("user", userOK), zap.Bool("token", tokenOK))
			s.forget(ctx)
		}
	case auth.Expired(token, s.now()):
		s.log.Info("persisted token expired; starting as guest")
		s.forget(ctx)
	default:
		restored = Session{User: user, Token: token}
	}

	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()
	return s.Current()
}

// Login sets the session and persists both entries.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	s.current = Session{User: &user, Token: token}
	s.mu.Unlock()

	if err := s.kv.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// UpdateUser replaces the stored profile after a successful edit, keeping the token.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	if s.current.User == nil {
		s.mu.Unlock()
		return nil
	}
	s.current.User = &user
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Logout clears the session in memory and in durable state. The in-memory
// session is cleared even when the store cannot be written.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
	return s.forget(ctx)
}

func (s *Store) forget(ctx context.Context) error {
	return errors.Join(s.kv.Delete(ctx, UserKey), s.kv.Delete(ctx, TokenKey))
}

func (s *Store) readUser(ctx context.Context) (*models.User, bool) {
	raw, err := s.kv.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("read persisted user failed", zap.Error(err))
		}
		return nil, false
	}
	if strings.TrimSpace(raw) == "" || raw == "null" {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("persisted user is malformed; ignoring", zap.Error(err))
		return nil, false
	}
	return &user, true
}

func (s *Store) readToken(ctx context.Context) (string, bool) {
	token, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("read persisted token failed", zap.Error(err))
		}
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
