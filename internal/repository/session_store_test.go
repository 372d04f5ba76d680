package repository

import (
	"context"
	"testing"
	"time"

	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client, 10*time.Minute), mr
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	session := reconcile.NewSession("IMPORT-abc", 3, models.ImportResult{
		Accounts: []models.AccountData{{ID: "a", Name: "Acc A", CurrencyID: "bitcoin"}},
		Settings: &models.DesktopSettings{CounterValue: "USD"},
	})
	session.Memo["a"] = reconcile.Item{Account: models.Account{ID: "a", Name: "Acc A"}, Mode: reconcile.ModeCreate}
	session.Items = []reconcile.Item{session.Memo["a"]}
	session.Selection.Add("a")
	session.Seeded = true

	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, "IMPORT-abc")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.UserID)
	assert.Equal(t, reconcile.StatusReviewing, loaded.Status)
	assert.True(t, loaded.Selection.Contains("a"))
	assert.Equal(t, reconcile.ModeCreate, loaded.Memo["a"].Mode)
	assert.True(t, loaded.ImportSettings)
	assert.Equal(t, "USD", loaded.Result.Settings.CounterValue)
}

func TestSessionStore_Expires(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, reconcile.NewSession("IMPORT-ttl", 1, models.ImportResult{})))
	mr.FastForward(11 * time.Minute)

	_, err := store.Get(ctx, "IMPORT-ttl")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, reconcile.NewSession("IMPORT-del", 1, models.ImportResult{})))
	require.NoError(t, store.Delete(ctx, "IMPORT-del"))

	_, err := store.Get(ctx, "IMPORT-del")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
