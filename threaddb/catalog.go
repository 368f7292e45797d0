package threaddb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	xstitch "github.com/mitsuami-megane/Cross-Stitch-DMC-replace-colors"
)

// SaveCatalog validates catalog and stores it under name, replacing any
// catalog previously stored under that name.
func SaveCatalog(
	ctx context.Context,
	database *sql.DB,
	name string,
	catalog xstitch.Catalog,
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: catalog name is empty", xstitch.ErrConfiguration)
	}
	if err := catalog.Validate(); err != nil {
		return err
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start catalog tx %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM threads WHERE catalog = ?", name,
	); err != nil {
		return fmt.Errorf("clear catalog %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalogs(name, updated_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at
	`, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record catalog %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO threads(catalog, position, code, name, r, g, b)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare thread insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range catalog {
		if _, err := stmt.ExecContext(ctx, name, i, t.Code, t.Name,
			t.Color.R, t.Color.G, t.Color.B); err != nil {
			return fmt.Errorf("insert thread %s: %w", t.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog %s: %w", name, err)
	}
	return nil
}

// LoadCatalog reads the catalog stored under name, in its saved order.
func LoadCatalog(
	ctx context.Context,
	database *sql.DB,
	name string,
) (xstitch.Catalog, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT code, name, r, g, b
		FROM threads
		WHERE catalog = ?
		ORDER BY position
	`, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("query catalog %s: %w", name, err)
	}
	defer rows.Close()

	var catalog xstitch.Catalog
	for rows.Next() {
		var (
			t       xstitch.Thread
			r, g, b int
		)
		if err := rows.Scan(&t.Code, &t.Name, &r, &g, &b); err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		t.Color = xstitch.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
		catalog = append(catalog, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog %s: %w", name, err)
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: no catalog named %q",
			xstitch.ErrConfiguration, name)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// ListCatalogs returns the names of the stored catalogs, sorted.
func ListCatalogs(ctx context.Context, database *sql.DB) ([]string, error) {
	rows, err := database.QueryContext(ctx,
		"SELECT name FROM catalogs ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query catalogs: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan catalog name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalogs: %w", err)
	}
	return names, nil
}
