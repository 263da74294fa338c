package repository

import (
	"context"
	"database/sql"
	"time"

	"vital_dashboard/internal/models"
)

type PrefsRepo interface {
	Save(ctx context.Context, p models.ViewPrefs) error
	// Load returns ok=false when nothing was saved yet.
	Load(ctx context.Context) (p models.ViewPrefs, ok bool, err error)
}

type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Prefs    PrefsRepo
	Activity ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Prefs:    NewPrefsSQLite(db),
		Activity: NewActivitySQLite(db),
	}
}
