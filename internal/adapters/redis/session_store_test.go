package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainsession "github.com/velora/shop-ui-gateway/internal/domain/session"
	"github.com/velora/shop-ui-gateway/internal/ports"
	"github.com/velora/shop-ui-gateway/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func newStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStore(SessionStoreOptions{Client: client, TTL: 30 * time.Minute})
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	rec := ports.SessionRecord{
		Token: "tok-abc",
		User: domainsession.UserProfile{
			ID:    "user-123",
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Role:  domainsession.RoleCustomer,
			Token: "tok-abc",
		},
	}

	require.NoError(t, store.Save(ctx, rec))

	loaded, err := store.Load(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, rec.Token, loaded.Token)
	assert.Equal(t, rec.User.ID, loaded.User.ID)
	assert.Equal(t, rec.User.Email, loaded.User.Email)
	assert.Equal(t, rec.User.Role, loaded.User.Role)
}

func TestSessionStore_LoadNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)

	_, err := store.Load(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_LoadCorruptUserData(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	// Simulate a record whose user payload was damaged in place.
	require.NoError(t, client.HSet(ctx, "session:tok-bad", fieldToken, "tok-bad", fieldUser, "{not json").Err())

	_, err := store.Load(ctx, "tok-bad")
	assert.ErrorIs(t, err, ports.ErrCorruptRecord)
}

func TestSessionStore_LoadTokenGuardMismatch(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	require.NoError(t, client.HSet(ctx, "session:tok-a", fieldToken, "tok-b", fieldUser, `{"id":"1"}`).Err())

	_, err := store.Load(ctx, "tok-a")
	assert.ErrorIs(t, err, ports.ErrCorruptRecord)
}

func TestSessionStore_ClearRemovesRecordAndCart(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	rec := ports.SessionRecord{
		Token: "tok-clear",
		User:  domainsession.UserProfile{ID: "u1", Token: "tok-clear"},
	}
	require.NoError(t, store.Save(ctx, rec))
	require.NoError(t, store.SaveCart(ctx, "tok-clear", []byte(`[{"sku":"A","qty":2}]`)))

	require.NoError(t, store.Clear(ctx, "tok-clear"))

	_, err := store.Load(ctx, "tok-clear")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = store.LoadCart(ctx, "tok-clear")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// Clearing again must be a no-op.
	assert.NoError(t, store.Clear(ctx, "tok-clear"))
}

func TestSessionStore_NotifyLogoutPublishes(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	sub := client.Subscribe(ctx, LogoutChannel)
	defer sub.Close()
	// Wait for the subscription to be established before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, store.NotifyLogout(ctx, "tok-x"))

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"logout"`)
		assert.Contains(t, msg.Payload, "tok-x")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for logout event")
	}
}

func TestSessionStore_CartRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := newStore(client)
	ctx := context.Background()

	contents := []byte(`[{"sku":"B","qty":1}]`)
	require.NoError(t, store.SaveCart(ctx, "tok-cart", contents))

	loaded, err := store.LoadCart(ctx, "tok-cart")
	require.NoError(t, err)
	assert.Equal(t, contents, loaded)
}
