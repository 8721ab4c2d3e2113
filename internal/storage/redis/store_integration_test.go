package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/storage"
)

// TestStoreIntegration exercises the store against a live Redis.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_REDIS_INTEGRATION") != "true" {
		t.Skip("set RUN_REDIS_INTEGRATION=true to run this integration test")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	ns := fmt.Sprintf("storefront-test-%d", time.Now().UnixNano())
	s, err := NewStore(ctx, Config{Addr: addr, Namespace: ns})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "token")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	got, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, s.Delete(ctx, "token"))
	_, err = s.Get(ctx, "token")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_KeyNamespacing(t *testing.T) {
	s := NewStoreWithClient(nil, "")
	assert.Equal(t, "storefront:usuario", s.key("usuario"))

	s = NewStoreWithClient(nil, "kiosk-3")
	assert.Equal(t, "kiosk-3:token", s.key("token"))
}
