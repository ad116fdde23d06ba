package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator"
	"github.com/rs/zerolog"

	"hostel_manager/internal/adapters/observability"
	"hostel_manager/internal/domain"
)

// Session holds the current authenticated user and keeps a durable mirror
// of it in a key-value slot so a restart picks the session back up without
// re-authenticating.
type Session struct {
	users    *Collection[domain.User]
	kv       domain.KVStore
	key      string
	validate *validator.Validate
	log      zerolog.Logger

	mu      sync.Mutex
	current *domain.User
	errs    []error
}

func NewSession(users *Collection[domain.User], kv domain.KVStore, key string, log zerolog.Logger) *Session {
	return &Session{
		users:    users,
		kv:       kv,
		key:      key,
		validate: validator.New(),
		log:      log.With().Str("component", "session").Logger(),
	}
}

// CurrentUser returns a copy of the session user, nil when logged out.
func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *Session) IsAuthenticated() bool { return s.CurrentUser() != nil }

func (s *Session) Errs() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

func (s *Session) recordErr(err error) {
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

// Login refetches the full user set and scans it for an exact email and
// password match. On a match the user becomes the session user and is
// mirrored to the durable slot; otherwise the session is left untouched and
// false comes back with ErrInvalidCredentials on the error log.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	if err := s.users.FetchAll(ctx); err != nil {
		s.recordErr(err)
		return false
	}
	for _, u := range s.users.Items() {
		if u.Email == email && u.Password == password {
			s.adopt(ctx, u)
			s.log.Info().Str("user", u.ID).Msg("login ok")
			return true
		}
	}
	s.recordErr(fmt.Errorf("login %s: %w", email, domain.ErrInvalidCredentials))
	s.log.Warn().Str("email", email).Msg("login rejected")
	return false
}

// Register validates the supplied user, defaults an unset role to client,
// creates it through the users collection, and adopts the created record as
// the session user.
func (s *Session) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.Role == "" {
		u.Role = domain.RoleClient
	}
	if err := s.validate.Struct(u); err != nil {
		err = fmt.Errorf("register: %w", err)
		s.recordErr(err)
		return nil, err
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}
	s.adopt(ctx, *created)
	s.log.Info().Str("user", created.ID).Msg("registered")
	return created, nil
}

// Logout clears the session and drops the durable mirror.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.kv.Remove(ctx, s.key); err != nil {
		s.log.Warn().Err(err).Msg("session mirror remove failed")
	}
	observability.ObserveKV("del")
}

// Restore loads a previously mirrored session. Corrupt or unreadable state
// is discarded and the session stays logged out; that is never an error.
func (s *Session) Restore(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn().Err(err).Msg("session mirror read failed")
		return
	}
	if !ok {
		observability.ObserveKV("miss")
		return
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		s.log.Warn().Msg("discarding corrupt session mirror")
		_ = s.kv.Remove(ctx, s.key)
		return
	}
	observability.ObserveKV("hit")
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	s.log.Info().Str("user", u.ID).Msg("session restored")
}

func (s *Session) adopt(ctx context.Context, u domain.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	// Mirroring is best-effort; a dead slot only costs the next restart a
	// fresh login.
	b, err := json.Marshal(u)
	if err == nil {
		err = s.kv.Set(ctx, s.key, b)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("session mirror write failed")
		return
	}
	observability.ObserveKV("set")
}
