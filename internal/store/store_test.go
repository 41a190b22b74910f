package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vighnaharta/internal/config"
	"github.com/vighnaharta/internal/db"
	"github.com/vighnaharta/internal/supabase"
)

func TestOpenSQLiteWithSeed(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "circles.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("circles:\n  - name: Airtel\n    code: airtel\n    sort_order: 1\n"), 0o644))

	repo, err := Open(context.Background(), config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(dir, "circles.db"),
		SeedFile:   seed,
	})
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &db.DB{}, repo)

	circles, err := repo.ListActiveCircles(context.Background())
	require.NoError(t, err)
	require.Len(t, circles, 1)
	assert.Equal(t, "airtel", circles[0].Code)
}

func TestOpenSQLiteBadSeed(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(context.Background(), config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(dir, "circles.db"),
		SeedFile:   filepath.Join(dir, "missing.yaml"),
	})
	assert.Error(t, err)
}

func TestOpenSupabase(t *testing.T) {
	repo, err := Open(context.Background(), config.StoreConfig{
		Driver:   config.StoreDriverSupabase,
		Supabase: config.SupabaseConfig{URL: "https://project.supabase.co", APIKey: "k", Timeout: time.Second},
	})
	require.NoError(t, err)
	assert.IsType(t, &supabase.Client{}, repo)
	assert.NoError(t, repo.Close())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"})
	assert.ErrorIs(t, err, config.ErrUnknownStoreDriver)
}
