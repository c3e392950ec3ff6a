package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-calendar/internal/domain"
	"github.com/pkordes/travel-calendar/internal/repo"
	"github.com/pkordes/travel-calendar/testutil"
)

// newTestPostgresKV opens a transaction against the test database and returns a
// KV backed by that transaction. The transaction is rolled back when the test
// finishes, giving per-test isolation.
func newTestPostgresKV(t *testing.T) repo.KV {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewPostgresKV(tx)
}

func TestPostgresKV_GetMissing(t *testing.T) {
	kv := newTestPostgresKV(t)

	_, err := kv.Get(context.Background(), "travelCalendar")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresKV_PutThenGet(t *testing.T) {
	kv := newTestPostgresKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "travelCalendar", `[{"id":"1"}]`))

	got, err := kv.Get(ctx, "travelCalendar")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)
}

func TestPostgresKV_PutOverwrites(t *testing.T) {
	kv := newTestPostgresKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "travelCalendar", "[]"))
	require.NoError(t, kv.Put(ctx, "travelCalendar", `[{"id":"2"}]`))

	got, err := kv.Get(ctx, "travelCalendar")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"2"}]`, got)
}
