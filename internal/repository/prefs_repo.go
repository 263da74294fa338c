package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vital_dashboard/internal/models"
)

type PrefsSQLite struct {
	db *sql.DB
}

func NewPrefsSQLite(db *sql.DB) *PrefsSQLite {
	return &PrefsSQLite{db: db}
}

const (
	viewPrefsRowID = 1

	upsertPrefsSQL = `
		INSERT INTO view_prefs (id, page, page_size, sort_key, sort_dir, view_mode, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page=excluded.page,
			page_size=excluded.page_size,
			sort_key=excluded.sort_key,
			sort_dir=excluded.sort_dir,
			view_mode=excluded.view_mode,
			updated_at=excluded.updated_at
	`

	selectPrefsSQL = `
		SELECT id, page, page_size, sort_key, sort_dir, view_mode, updated_at
		FROM view_prefs WHERE id=?
	`
)

// Save upserts the single view_prefs row. UpdatedAt is stored in UTC and
// defaults to now.
func (r *PrefsSQLite) Save(ctx context.Context, p models.ViewPrefs) error {
	ts := p.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx, upsertPrefsSQL,
		viewPrefsRowID,
		p.Table.Page,
		p.Table.PageSize,
		string(p.Table.SortKey),
		string(p.Table.SortDir),
		string(p.View),
		ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save view prefs: %w", err)
	}
	return nil
}

// Load reads the view_prefs row. Unknown stored values are normalized so a
// hand-edited database cannot break rendering.
func (r *PrefsSQLite) Load(ctx context.Context) (models.ViewPrefs, bool, error) {
	var (
		p                        models.ViewPrefs
		sortKey, sortDir, viewMd string
	)
	err := r.db.QueryRowContext(ctx, selectPrefsSQL, viewPrefsRowID).Scan(
		&p.ID,
		&p.Table.Page,
		&p.Table.PageSize,
		&sortKey,
		&sortDir,
		&viewMd,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ViewPrefs{}, false, nil
	}
	if err != nil {
		return models.ViewPrefs{}, false, fmt.Errorf("load view prefs: %w", err)
	}

	if key, perr := models.ParseSortKey(sortKey); perr == nil {
		p.Table.SortKey = key
	} else {
		p.Table.SortKey = models.SortTimestamp
	}
	p.Table.SortDir = models.SortDesc
	if models.SortDir(sortDir) == models.SortAsc {
		p.Table.SortDir = models.SortAsc
	}
	if p.Table.PageSize < 1 {
		p.Table.PageSize = models.DefaultPageSize
	}
	if p.Table.Page < 1 {
		p.Table.Page = 1
	}
	p.View = models.ParseViewMode(viewMd)
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, true, nil
}
