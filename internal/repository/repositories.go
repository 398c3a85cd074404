package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/deppfellow/venue-booking/internal/database"
	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/server"
)

// Repositories is the entry point to the store. It holds no session state:
// each unit of work acquires its own transaction.
type Repositories struct {
	db     *database.Database
	logger *zerolog.Logger
}

// NewRepositories builds the store from the application container.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB, s.Logger)
}

func New(db *database.Database, logger *zerolog.Logger) *Repositories {
	return &Repositories{db: db, logger: logger}
}

// Tx is a unit of work. Writes made through its repositories become visible
// to other requests only after Commit; Rollback discards them.
type Tx struct {
	tx   *sqlx.Tx
	done bool

	Venues  *VenueRepository
	Artists *ArtistRepository
	Shows   *ShowRepository
}

// Begin opens a unit of work with the backend's isolation level
// (read-committed on Postgres). The caller must Commit or Rollback.
func (r *Repositories) Begin(ctx context.Context) (*Tx, error) {
	tx, err := r.db.DB.BeginTxx(ctx, r.db.TxOptions())
	if err != nil {
		return nil, errs.Storage("begin transaction", err)
	}

	return &Tx{
		tx:      tx,
		Venues:  &VenueRepository{q: tx},
		Artists: &ArtistRepository{q: tx},
		Shows:   &ShowRepository{q: tx},
	}, nil
}

// Commit persists the unit of work.
func (t *Tx) Commit() error {
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return errs.Storage("commit transaction", err)
	}
	return nil
}

// Rollback aborts the unit of work. It is safe to call after Commit or more
// than once.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true

	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errs.Storage("rollback transaction", err)
	}
	return nil
}

// InTx runs fn in a unit of work. The transaction is committed when fn
// returns nil and rolled back when it returns an error or panics.
func (r *Repositories) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to roll back transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}
