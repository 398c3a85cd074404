package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/deppfellow/venue-booking/internal/errs"
)

func openScratchDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE venues (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    CONSTRAINT venues_name_check CHECK (name <> '')
);
CREATE TABLE shows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    venue_id INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE
);`)
	require.NoError(t, err)
	return db
}

func TestClassify_SQLiteConstraints(t *testing.T) {
	db := openScratchDB(t)

	_, err := db.Exec(`INSERT INTO venues (name) VALUES (NULL)`)
	sqlErr, ok := Classify(err)
	require.True(t, ok)
	assert.Equal(t, NotNullViolation, sqlErr.Code)
	assert.Equal(t, "venues", sqlErr.TableName)
	assert.Equal(t, "name", sqlErr.ColumnName)

	_, err = db.Exec(`INSERT INTO venues (name) VALUES ('')`)
	sqlErr, ok = Classify(err)
	require.True(t, ok)
	assert.Equal(t, CheckViolation, sqlErr.Code)
	assert.Equal(t, "name", sqlErr.ColumnName)

	_, err = db.Exec(`INSERT INTO shows (venue_id) VALUES (99)`)
	sqlErr, ok = Classify(err)
	require.True(t, ok)
	assert.Equal(t, ForeignKeyViolation, sqlErr.Code)
}

func TestToDomain_SQLite(t *testing.T) {
	db := openScratchDB(t)

	_, err := db.Exec(`INSERT INTO venues (name) VALUES (NULL)`)
	domainErr := ToDomain(fmt.Errorf("insert venue: %w", err), "venue")
	assert.True(t, errors.Is(domainErr, errs.ErrValidation))

	de, ok := errs.AsError(domainErr)
	require.True(t, ok)
	require.Len(t, de.Fields, 1)
	assert.Equal(t, "name", de.Fields[0].Field)
	assert.Equal(t, "is required", de.Fields[0].Error)

	_, err = db.Exec(`INSERT INTO shows (venue_id) VALUES (99)`)
	assert.True(t, errors.Is(ToDomain(err, "show"), errs.ErrReferential))
}

func TestToDomain_Postgres(t *testing.T) {
	// Postgres names the constraint but leaves ColumnName empty on 23503.
	fk := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        `insert or update on table "shows" violates foreign key constraint "shows_artist_id_fkey"`,
		TableName:      "shows",
		ConstraintName: "shows_artist_id_fkey",
	}

	err := ToDomain(fk, "show")
	de, ok := errs.AsError(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindReferential, de.Kind)
	assert.Equal(t, "artist", de.Entity)
	assert.Equal(t, "The referenced Artist does not exist", de.Message)

	err = ToDomain(&pgconn.PgError{Code: "23503", ConstraintName: "shows_venue_id_fkey"}, "show")
	de, ok = errs.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "venue", de.Entity)

	notNull := &pgconn.PgError{Code: "23502", TableName: "venues", ColumnName: "name"}
	assert.True(t, errors.Is(ToDomain(notNull, "venue"), errs.ErrValidation))

	check := &pgconn.PgError{Code: "23514", TableName: "artists", ConstraintName: "artists_name_check"}
	de, ok = errs.AsError(ToDomain(check, "artist"))
	require.True(t, ok)
	require.Len(t, de.Fields, 1)
	assert.Equal(t, "name", de.Fields[0].Field)
}

func TestConvertPgError_ColumnFromConstraintName(t *testing.T) {
	tests := []struct {
		constraint string
		table      string
		column     string
	}{
		{"shows_venue_id_fkey", "shows", "venue_id"},
		{"shows_artist_id_fkey", "shows", "artist_id"},
		{"venues_name_check", "venues", "name"},
		{"venues_pkey", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			got := ConvertPgError(&pgconn.PgError{Code: "23503", ConstraintName: tt.constraint})
			assert.Equal(t, tt.table, got.TableName)
			assert.Equal(t, tt.column, got.ColumnName)
		})
	}

	// A column reported by the server is kept.
	got := ConvertPgError(&pgconn.PgError{Code: "23502", ColumnName: "city", ConstraintName: "venues_name_check"})
	assert.Equal(t, "city", got.ColumnName)
}

func TestToDomain_PassesThroughAndWrapsUnknown(t *testing.T) {
	notFound := errs.NotFound("venue", 1)
	assert.Same(t, notFound, ToDomain(notFound, "venue"))

	err := ToDomain(errors.New("disk I/O error"), "venue")
	assert.True(t, errors.Is(err, errs.ErrStorage))

	assert.NoError(t, ToDomain(nil, "venue"))
}

func TestHandleError(t *testing.T) {
	var httpErr *errs.HTTPError

	err := HandleError(ToDomain(&pgconn.PgError{Code: "23505", TableName: "venues", ColumnName: "name"}, "venue"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	// Driver errors that skipped ToDomain are not exposed.
	err = HandleError(&pgconn.PgError{Code: "23505", TableName: "venues", ConstraintName: "venues_name_key"})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	err = HandleError(errs.NotFound("artist", 5))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	err = HandleError(sql.ErrNoRows)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	err = HandleError(errors.New("boom"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity(""))
}
