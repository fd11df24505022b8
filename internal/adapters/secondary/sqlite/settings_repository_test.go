package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindseymertz/lily/internal/adapters/secondary/sqlite"
	apperrors "github.com/lindseymertz/lily/internal/core/errors"
)

func newRepo(t *testing.T) *sqlite.SettingsRepository {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewSettingsRepository(db)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports ErrSettingNotFound", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Get(ctx, "dashboard.filter_presets")
		assert.ErrorIs(t, err, apperrors.ErrSettingNotFound)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Put(ctx, "dashboard.sla_thresholds", `{"responseTimeHours":8}`))

		got, err := repo.Get(ctx, "dashboard.sla_thresholds")
		require.NoError(t, err)
		assert.Equal(t, `{"responseTimeHours":8}`, got)
	})

	t.Run("put overwrites in place", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Put(ctx, "k", "first"))
		require.NoError(t, repo.Put(ctx, "k", "second"))

		got, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Put(ctx, "dashboard.filter_presets", "[]"))
		require.NoError(t, repo.Put(ctx, "dashboard.sla_thresholds", "{}"))

		presets, err := repo.Get(ctx, "dashboard.filter_presets")
		require.NoError(t, err)
		thresholds, err := repo.Get(ctx, "dashboard.sla_thresholds")
		require.NoError(t, err)

		assert.Equal(t, "[]", presets)
		assert.Equal(t, "{}", thresholds)
	})

	t.Run("ping succeeds on an open database", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("values survive reopening the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.db")

		db, err := sqlite.Open(path)
		require.NoError(t, err)
		require.NoError(t, sqlite.NewSettingsRepository(db).Put(ctx, "k", "v"))
		require.NoError(t, db.Close())

		db, err = sqlite.Open(path)
		require.NoError(t, err)
		defer db.Close()

		got, err := sqlite.NewSettingsRepository(db).Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})
}
