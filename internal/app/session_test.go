package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel_manager/internal/adapters/memory"
	"hostel_manager/internal/app"
	"hostel_manager/internal/domain"
)

const sessionKey = "hostel:session:test"

func newSessionFixture() (*app.Session, *memory.KV) {
	users := memory.New("users", []map[string]any{
		{"id": "u-1", "name": "Marta", "email": "marta@hostel.test", "password": "marta123", "type_user": "owner"},
		{"id": "u-2", "name": "Diego", "email": "diego@hostel.test", "password": "diego123", "type_user": "client"},
	})
	kv := memory.NewKV()
	col := app.NewUsers(users, zerolog.Nop())
	return app.NewSession(col, kv, sessionKey, zerolog.Nop()), kv
}

func TestLoginExactMatch(t *testing.T) {
	s, kv := newSessionFixture()
	ctx := context.Background()

	require.True(t, s.Login(ctx, "marta@hostel.test", "marta123"))
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "u-1", s.CurrentUser().ID)

	// session got mirrored durably
	_, ok, err := kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, _ := newSessionFixture()
	ctx := context.Background()

	assert.False(t, s.Login(ctx, "marta@hostel.test", "wrong"))
	assert.False(t, s.Login(ctx, "nobody@hostel.test", "marta123"))
	assert.False(t, s.IsAuthenticated())

	errs := s.Errs()
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], domain.ErrInvalidCredentials))
}

func TestRegisterDefaultsRoleToClient(t *testing.T) {
	s, _ := newSessionFixture()

	created, err := s.Register(context.Background(), domain.User{
		Name:     "Rosa",
		Email:    "rosa@hostel.test",
		Password: "rosa123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, created.Role)
	assert.NotEmpty(t, created.ID, "backend assigns the id")

	// the created record is adopted as the session user
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, created.ID, s.CurrentUser().ID)
}

func TestRegisterKeepsSuppliedRole(t *testing.T) {
	s, _ := newSessionFixture()

	created, err := s.Register(context.Background(), domain.User{
		Name:     "Marco",
		Email:    "marco@hostel.test",
		Password: "marco123",
		Role:     domain.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, created.Role)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newSessionFixture()

	_, err := s.Register(context.Background(), domain.User{
		Name:     "NoMail",
		Email:    "not-an-email",
		Password: "x",
	})
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutClearsSessionAndMirror(t *testing.T) {
	s, kv := newSessionFixture()
	ctx := context.Background()

	require.True(t, s.Login(ctx, "diego@hostel.test", "diego123"))
	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	_, ok, _ := kv.Get(ctx, sessionKey)
	assert.False(t, ok)
}

func TestRestoreFromMirror(t *testing.T) {
	s, kv := newSessionFixture()
	ctx := context.Background()

	require.True(t, s.Login(ctx, "marta@hostel.test", "marta123"))

	// a fresh service over the same slot picks the session back up
	users := app.NewUsers(memory.New("users", nil), zerolog.Nop())
	s2 := app.NewSession(users, kv, sessionKey, zerolog.Nop())
	s2.Restore(ctx)

	require.True(t, s2.IsAuthenticated())
	assert.Equal(t, "u-1", s2.CurrentUser().ID)
}

func TestRestoreDiscardsCorruptState(t *testing.T) {
	s, kv := newSessionFixture()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, sessionKey, []byte("{not json")))
	s.Restore(ctx)
	assert.False(t, s.IsAuthenticated())

	// the corrupt slot is gone
	_, ok, _ := kv.Get(ctx, sessionKey)
	assert.False(t, ok)

	// valid JSON without an id is corrupt too
	require.NoError(t, kv.Set(ctx, sessionKey, []byte(`{"name":"ghost"}`)))
	s.Restore(ctx)
	assert.False(t, s.IsAuthenticated())
}
