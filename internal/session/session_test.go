package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/auth"
	"github.com/hongminglow/storefront/internal/models"
	"github.com/hongminglow/storefront/internal/storage"
)

func TestRestore_EmptyStoreIsGuest(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	got := s.Restore(context.Background())
	assert.False(t, got.Authenticated())
	assert.Empty(t, got.Token)
}

func TestLoginThenRestore(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	user := models.User{ID: 4, FullName: "Ana", Email: "ana@x.com", Role: models.NormalUser}

	require.NoError(t, NewStore(kv, nil).Login(ctx, user, "opaque-token"))

	got := NewStore(kv, nil).Restore(ctx)
	require.True(t, got.Authenticated())
	assert.Equal(t, "Ana", got.User.FullName)
	assert.Equal(t, "opaque-token", got.Token)
}

func TestRestore_MalformedUserIsGuest(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, UserKey, "{not json"))
	require.NoError(t, kv.Set(ctx, TokenKey, "tok"))

	got := NewStore(kv, nil).Restore(ctx)
	assert.False(t, got.Authenticated())
	assert.Empty(t, got.Token)
}

func TestRestore_UserWithoutTokenIsGuest(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	raw, err := json.Marshal(models.User{ID: 4, FullName: "Ana", Role: models.NormalUser})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, UserKey, string(raw)))

	got := NewStore(kv, nil).Restore(ctx)
	assert.False(t, got.Authenticated())
	assert.Empty(t, got.Token)

	_, err = kv.Get(ctx, UserKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestore_TokenWithoutUserIsGuest(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, TokenKey, "tok"))

	s := NewStore(kv, nil)
	got := s.Restore(ctx)
	assert.False(t, got.Authenticated())
	assert.Empty(t, got.Token)
	assert.Empty(t, s.Token())

	_, err := kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogout_ClearsBothEntries(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := NewStore(kv, nil)
	require.NoError(t, s.Login(ctx, models.User{ID: 1, FullName: "Ana"}, "tok"))

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Current().Authenticated())
	assert.Empty(t, s.Token())

	_, err := kv.Get(ctx, UserKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestore_ExpiredJWTIsDropped(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	user := models.User{ID: 1, FullName: "Ana"}

	tm := auth.NewTokenManager("secret", "issuer", time.Minute)
	token, err := tm.Generate(user)
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, UserKey, string(raw)))
	require.NoError(t, kv.Set(ctx, TokenKey, token))

	s := NewStore(kv, nil)
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	got := s.Restore(ctx)
	assert.False(t, got.Authenticated())
	_, err = kv.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRestore_ValidJWTKept(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	require.NoError(t, NewStore(kv, nil).Login(ctx, models.User{ID: 2, FullName: "Luis"}, token))

	got := NewStore(kv, nil).Restore(ctx)
	require.True(t, got.Authenticated())
	assert.Equal(t, token, got.Token)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), nil)
	require.NoError(t, s.Login(ctx, models.User{ID: 1, FullName: "Ana"}, "tok"))

	cur := s.Current()
	cur.User.FullName = "changed"
	assert.Equal(t, "Ana", s.Current().User.FullName)
}

func TestUpdateUser_KeepsToken(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := NewStore(kv, nil)
	require.NoError(t, s.Login(ctx, models.User{ID: 1, FullName: "Ana"}, "tok"))

	require.NoError(t, s.UpdateUser(ctx, models.User{ID: 1, FullName: "Ana María"}))
	got := NewStore(kv, nil).Restore(ctx)
	assert.Equal(t, "Ana María", got.User.FullName)
	assert.Equal(t, "tok", got.Token)
}
