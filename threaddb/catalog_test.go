package threaddb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	xstitch "github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Bootstrap(context.Background(),
		filepath.Join(t.TempDir(), "threads.db"))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSaveLoadCatalog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	database, err := Bootstrap(ctx, filepath.Join(t.TempDir(), "nested", "threads.db"))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer database.Close()

	want := xstitch.DefaultCatalog()[:40]
	if err := SaveCatalog(ctx, database, "dmc", want); err != nil {
		t.Fatalf("save catalog: %v", err)
	}

	got, err := LoadCatalog(ctx, database, "dmc")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveCatalog_ReplacesPreviousRows(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	first := xstitch.Catalog{
		{Code: "A1", Name: "Alpha", Color: xstitch.RGB{R: 1, G: 2, B: 3}},
		{Code: "B2", Name: "Beta", Color: xstitch.RGB{R: 4, G: 5, B: 6}},
	}
	second := xstitch.Catalog{
		{Code: "C3", Name: "Gamma", Color: xstitch.RGB{R: 250, G: 0, B: 9}},
	}
	if err := SaveCatalog(ctx, database, "house", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := SaveCatalog(ctx, database, "house", second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if err := SaveCatalog(ctx, database, "anchor", first); err != nil {
		t.Fatalf("save anchor: %v", err)
	}

	got, err := LoadCatalog(ctx, database, "house")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}

	names, err := ListCatalogs(ctx, database)
	if err != nil {
		t.Fatalf("list catalogs: %v", err)
	}
	if diff := cmp.Diff([]string{"anchor", "house"}, names); diff != "" {
		t.Fatalf("catalog names mismatch (-want +got):\n%s", diff)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	catalog := xstitch.DefaultCatalog()[:3]
	if err := SaveCatalog(ctx, database, "dmc", catalog); err != nil {
		t.Fatalf("save catalog: %v", err)
	}

	if err := Migrate(ctx, database); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var applied int
	if err := database.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 recorded migration, got %d", applied)
	}
	got, err := LoadCatalog(ctx, database, "dmc")
	if err != nil {
		t.Fatalf("load after migrate: %v", err)
	}
	if len(got) != len(catalog) {
		t.Errorf("expected %d threads to survive, got %d", len(catalog), len(got))
	}
}

func TestLoadCatalog_UnknownNameIsConfigurationError(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := LoadCatalog(ctx, database, "missing")
	if !errors.Is(err, xstitch.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSaveCatalog_RejectsInvalidCatalog(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	dup := xstitch.Catalog{
		{Code: "310", Name: "Black"},
		{Code: "310", Name: "Black again"},
	}
	if err := SaveCatalog(ctx, database, "dup", dup); !errors.Is(err, xstitch.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := SaveCatalog(ctx, database, " ", dup[:1]); !errors.Is(err, xstitch.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty name, got %v", err)
	}
}
