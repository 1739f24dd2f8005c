package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/youpv/whosthatpokemon/assets"
)

// openTestDB opens a fresh file-backed database with the embedded schema applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openMigrated(t, filepath.Join(t.TempDir(), "test.db"))
}

// openMigrated opens path and applies the embedded migrations. The schema is
// idempotent, so reopening an existing file is fine.
func openMigrated(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	files, err := assets.Migrations()
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	for _, f := range files {
		b, err := assets.FS.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Fatalf("apply %s: %v", f, err)
		}
	}
	return db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewSQLiteStore(openTestDB(t))

	got, err := st.Get(ctx, HighScoreKey)
	if err != nil || got != 0 {
		t.Fatalf("Get on empty table = %d, %v; want 0, nil", got, err)
	}
	if err := st.Set(ctx, HighScoreKey, 7); err != nil {
		t.Fatalf("Set(7): %v", err)
	}
	if got, _ := st.Get(ctx, HighScoreKey); got != 7 {
		t.Fatalf("Get = %d, want 7", got)
	}
	if err := st.Set(ctx, HighScoreKey, 9); err != nil {
		t.Fatalf("Set(9): %v", err)
	}
	if got, _ := st.Get(ctx, HighScoreKey); got != 9 {
		t.Fatalf("Get after overwrite = %d, want 9", got)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	db := openMigrated(t, path)
	if err := NewSQLiteStore(db).Set(ctx, HighScoreKey, 4); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db2 := openMigrated(t, path)
	if got, err := NewSQLiteStore(db2).Get(ctx, HighScoreKey); err != nil || got != 4 {
		t.Fatalf("Get after reopen = %d, %v; want 4, nil", got, err)
	}
}

func TestSQLiteSchemaRejectsNegativeValue(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`, HighScoreKey, -1, "now")
	if err == nil {
		t.Fatalf("insert of negative value succeeded; CHECK constraint missing")
	}
}

func TestSQLiteStoreRejectsNegative(t *testing.T) {
	st := NewSQLiteStore(openTestDB(t))
	if err := st.Set(context.Background(), HighScoreKey, -3); !errors.Is(err, ErrNegative) {
		t.Fatalf("Set(-3) err = %v, want ErrNegative", err)
	}
}
