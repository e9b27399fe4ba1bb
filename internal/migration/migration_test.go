package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationsFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_kv.sql": "CREATE TABLE kv (k TEXT);",
	}), SQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"002_index.sql": "CREATE INDEX idx ON kv (k);",
		"001_kv.sql":    "CREATE TABLE kv (k TEXT);",
		"README.md":     "not a migration",
	}), SQLite)

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "kv" {
		t.Errorf("first migration = %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "index" {
		t.Errorf("second migration = %+v", migrations[1])
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_kv.sql":      "CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT);",
		"002_updated.sql": "ALTER TABLE kv ADD COLUMN updated_at TEXT;",
	}), SQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	if _, err := db.Exec("INSERT INTO kv (k, v, updated_at) VALUES ('a', 'b', 'now')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("second ApplyMigrations = (%d, %v), want (0, nil)", applied, err)
	}

	pending, err := runner.Pending()
	if err != nil || pending != 0 {
		t.Errorf("Pending() = (%d, %v), want (0, nil)", pending, err)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_kv.sql":     "CREATE TABLE kv (k TEXT);",
		"002_broken.sql": "CREATE TABLE kv (k TEXT);",
	}), SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from duplicate table")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("version = %d after failed migration, want 1", version)
	}

	pending, _ := runner.Pending()
	if pending != 1 {
		t.Errorf("Pending() = %d, want 1", pending)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_kv.sql": "CREATE TABLE kv (k TEXT);",
	}), SQLite)

	if err := runner.SetVersion(9); err != nil {
		t.Fatal(err)
	}

	err := runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-than-supported error", err)
	}

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}

func TestMigrationFilenameValidation(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"missing underscore", map[string]string{"001.sql": "SELECT 1;"}, "invalid migration filename"},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}, "invalid version number"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "1_b.sql": "SELECT 1;"}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), migrationsFS(tt.files), SQLite)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadMigrationFiles() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestPostgresPlaceholder(t *testing.T) {
	if got := Postgres.Placeholder(2); got != "$2" {
		t.Errorf("Postgres.Placeholder(2) = %q, want $2", got)
	}
	if got := SQLite.Placeholder(2); got != "?" {
		t.Errorf("SQLite.Placeholder(2) = %q, want ?", got)
	}
}
