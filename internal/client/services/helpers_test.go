package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/affiliatepro/internal/client/database"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupRepo(t *testing.T) documents.Repository {
	t.Helper()
	return setupRepoOn(setupDB(t))
}

func setupRepoOn(db *sql.DB) documents.Repository {
	return documents.NewSQLiteRepository(db)
}

var nopLogger = logging.NewNopLogger()

func putRaw(t *testing.T, repo documents.Repository, key, value string) {
	t.Helper()
	require.NoError(t, repo.Set(context.Background(), key, []byte(value)))
}

var errDiskFull = errors.New("disk full")

// failingRepo fails every Set of failKey.
type failingRepo struct {
	documents.Repository
	failKey string
}

func (r failingRepo) Set(ctx context.Context, key string, value []byte) error {
	if key == r.failKey {
		return errDiskFull
	}
	return r.Repository.Set(ctx, key, value)
}
