package repository_test

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"vital_dashboard/internal/models"
	"vital_dashboard/internal/repository"
	"vital_dashboard/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func TestActivitySQLite_Append_FillsIDAndTime(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer conn.Close()

	isUUID := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := uuid.Parse(s)
		return err == nil
	})
	isSQLiteTimestamp := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		_, err := time.Parse("2006-01-02 15:04:05", s)
		return err == nil
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO activity_events")).
		WithArgs(isUUID, isSQLiteTimestamp, "DELETE", "entry 1700 deleted", `{"id":"1700"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repository.NewActivitySQLite(conn).Append(context.Background(), models.ActivityEvent{
		Type:        " delete ",
		Description: "entry 1700 deleted",
		Metadata:    map[string]string{"id": "1700"},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivitySQLite_List_BuildsFilters(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer conn.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}).
		AddRow("a", "2024-01-01 10:00:00", "EXPORT", "exported 3 rows", `{"rows":3}`).
		AddRow("b", "2024-01-01 11:00:00", "EXPORT", "exported page", `not json`)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, occurred_at, type, message, meta FROM activity_events WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC",
	)).
		WithArgs("2024-01-01 00:00:00", "2024-01-02 00:00:00", "EXPORT").
		WillReturnRows(rows)

	got, err := repository.NewActivitySQLite(conn).List(context.Background(), from, to, "export")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() len = %d", len(got))
	}
	if want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC); !got[0].OccurredAt.Equal(want) {
		t.Fatalf("OccurredAt = %v, want %v", got[0].OccurredAt, want)
	}
	if m, ok := got[0].Metadata.(map[string]any); !ok || m["rows"] != float64(3) {
		t.Fatalf("Metadata = %#v", got[0].Metadata)
	}
	if got[1].Metadata != "not json" {
		t.Fatalf("malformed metadata should stay raw, got %#v", got[1].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivitySQLite_List_NoFilters(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM activity_events ORDER BY occurred_at ASC")).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "type", "message", "meta"}))

	got, err := repository.NewActivitySQLite(conn).List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil", got)
	}
}

func TestRepository_SQLiteRoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "dash.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn)
	ctx := context.Background()

	prefs := models.ViewPrefs{
		Table: models.NewTableState(5).SortBy(models.SortSys),
		View:  models.ViewWeekly,
	}
	if err := repos.Prefs.Save(ctx, prefs); err != nil {
		t.Fatalf("Save: %v", err)
	}
	prefs.Table = prefs.Table.Next(9)
	if err := repos.Prefs.Save(ctx, prefs); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, ok, err := repos.Prefs.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if got.Table != prefs.Table || got.View != models.ViewWeekly {
		t.Fatalf("Load = %+v, want %+v", got, prefs)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, typ := range []string{models.ActivityReload, models.ActivityDelete, models.ActivityReload} {
		ev := models.ActivityEvent{OccurredAt: base.Add(time.Duration(i) * time.Hour), Type: typ, Description: typ}
		if err := repos.Activity.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	reloads, err := repos.Activity.List(ctx, base.Add(30*time.Minute), time.Time{}, models.ActivityReload)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reloads) != 1 || !reloads[0].OccurredAt.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("List = %+v", reloads)
	}
}
