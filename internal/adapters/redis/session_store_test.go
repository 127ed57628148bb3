package redis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/domain/tenant"
	"github.com/techmidia/painel/internal/testutil"
)

func newSession(id string, ttl time.Duration) domainauth.Session {
	now := time.Now()
	return domainauth.Session{
		ID:             id,
		UserID:         42,
		Username:       "maria",
		Email:          "maria@example.com",
		Role:           domainauth.RoleUser,
		BackendCookies: []domainauth.StoredCookie{{Name: "session", Value: "abc"}},
		CurrentPage:    "clientes",
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(testutil.SetupTestRedis(t).Client)
	ctx := t.Context()

	want := newSession("sess-1", 30*time.Minute)
	want.Tenant = &tenant.Config{NomeEmpresa: "Acme"}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, want.BackendCookies, got.BackendCookies)
	assert.Equal(t, "clientes", got.Page())
	require.NotNil(t, got.Tenant)
	assert.Equal(t, "Acme", got.Tenant.NomeEmpresa)
	assert.WithinDuration(t, want.ExpiresAt, got.ExpiresAt, time.Second)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Missing(t *testing.T) {
	store := NewSessionStore(testutil.SetupTestRedis(t).Client)

	for _, id := range []string{"", "non-existent"} {
		_, err := store.Get(t.Context(), id)
		require.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
	require.NoError(t, store.Delete(t.Context(), ""))
}

func TestSessionStore_KeyExpiresWithSession(t *testing.T) {
	r := testutil.SetupTestRedis(t)
	store := NewSessionStore(r.Client)
	ctx := t.Context()

	require.NoError(t, store.Save(ctx, newSession("sess-ttl", 2*time.Second)))
	ttl := r.Client.TTL(ctx, "painel:session:sess-ttl").Val()
	assert.Positive(t, ttl)
	assert.LessOrEqual(t, ttl, 2*time.Second)

	r.FastForward(3 * time.Second)
	_, err := store.Get(ctx, "sess-ttl")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_ExpiredPayloadIsDropped(t *testing.T) {
	r := testutil.SetupTestRedis(t)
	store := NewSessionStore(r.Client)
	ctx := t.Context()

	require.NoError(t, store.Save(ctx, newSession("sess-old", time.Hour)))
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := store.Get(ctx, "sess-old")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, r.Client.Exists(ctx, "painel:session:sess-old").Val())
}

func TestSessionStore_Prefix(t *testing.T) {
	client := testutil.SetupTestRedis(t).Client
	store := NewSessionStoreWithPrefix(client, "loja-a:")
	ctx := t.Context()

	require.NoError(t, store.Save(ctx, newSession("sess-p", 30*time.Minute)))
	assert.Equal(t, int64(1), client.Exists(ctx, "loja-a:session:sess-p").Val())

	got, err := store.Get(ctx, "sess-p")
	require.NoError(t, err)
	assert.Equal(t, "sess-p", got.ID)
}

func TestSessionStore_SaveRejects(t *testing.T) {
	store := NewSessionStore(testutil.SetupTestRedis(t).Client)

	require.ErrorIs(t, store.Save(t.Context(), newSession("", 30*time.Minute)), errEmptyID)
	require.ErrorIs(t, store.Save(t.Context(), newSession("sess-x", -time.Hour)), errExpired)
}

func TestSessionStore_CountAndPurge(t *testing.T) {
	client := testutil.SetupTestRedis(t).Client
	store := NewSessionStoreWithPrefix(client, "count:")
	ctx := t.Context()

	for i := range 3 {
		require.NoError(t, store.Save(ctx, newSession(fmt.Sprintf("s-%d", i), time.Hour)))
	}
	require.NoError(t, client.Set(ctx, "count:chat:s-0", "x", time.Hour).Err())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	purged, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, purged)

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(1), client.Exists(ctx, "count:chat:s-0").Val(), "transcripts survive a purge")
}
