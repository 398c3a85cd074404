// Package repository is the entity store: all interactions with the database.
//
// It contains the SQL for venues, artists and shows, abstracting it away from
// the service layer. Queries are written once with "?" placeholders and
// rebound per driver by sqlx, so the same code runs on Postgres and SQLite.
//
// Every repository works against a sqlx.ExtContext, which is satisfied by
// both *sqlx.DB and *sqlx.Tx; services normally obtain repositories bound to
// a transaction through Repositories.InTx.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/venue-booking/internal/config"
	"github.com/deppfellow/venue-booking/internal/database"
	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/sqlerr"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere,
// with the term's own wildcard characters escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// nameMatches is the case-insensitive search predicate on the name column.
// It expects a containsPattern argument.
func nameMatches(q sqlx.ExtContext) string {
	lower := "LOWER"
	if q.DriverName() == config.DriverSQLite {
		lower = database.SQLiteLowerFunc
	}
	return lower + `(name) LIKE ? ESCAPE '\'`
}

// getOne scans a single row, turning "no rows" into a NotFound domain error.
func getOne(ctx context.Context, q sqlx.ExtContext, dest any, entity string, id int64, query string, args ...any) error {
	err := sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NotFound(entity, id)
	}
	if err != nil {
		return sqlerr.ToDomain(fmt.Errorf("get %s %d: %w", entity, id, err), entity)
	}
	return nil
}

// execOne runs a statement that must affect exactly one row identified by id.
func execOne(ctx context.Context, q sqlx.ExtContext, entity string, id int64, op string, query string, args ...any) error {
	result, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return sqlerr.ToDomain(fmt.Errorf("%s %s %d: %w", op, entity, id, err), entity)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errs.Storage(fmt.Sprintf("%s %s rows affected", op, entity), err)
	}
	if affected == 0 {
		return errs.NotFound(entity, id)
	}
	return nil
}

func count(ctx context.Context, q sqlx.ExtContext, entity, table string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, sqlerr.ToDomain(fmt.Errorf("count %s: %w", table, err), entity)
	}
	return n, nil
}
