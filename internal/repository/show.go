package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/sqlerr"
)

const showColumns = `id, venue_id, artist_id, start_time`

type ShowRepository struct {
	q sqlx.ExtContext
}

// Create inserts s and sets its generated id. StartTime is normalized to UTC
// microseconds before it is written.
func (r *ShowRepository) Create(ctx context.Context, s *model.Show) error {
	s.StartTime = model.NormalizeTime(s.StartTime)

	query := r.q.Rebind(`INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?) RETURNING id`)
	if err := r.q.QueryRowxContext(ctx, query, s.VenueID, s.ArtistID, s.StartTime).Scan(&s.ID); err != nil {
		return sqlerr.ToDomain(fmt.Errorf("insert show: %w", err), model.EntityShow)
	}
	return nil
}

func (r *ShowRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, model.EntityShow, id, "delete", `DELETE FROM shows WHERE id = ?`, id)
}

func (r *ShowRepository) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	var s model.Show
	if err := getOne(ctx, r.q, &s, model.EntityShow, id,
		`SELECT `+showColumns+` FROM shows WHERE id = ?`, id); err != nil {
		return nil, err
	}
	s.StartTime = s.StartTime.UTC()
	return &s, nil
}

// List returns every show ordered by id.
func (r *ShowRepository) List(ctx context.Context) ([]model.Show, error) {
	return r.selectShows(ctx, "list shows", `SELECT `+showColumns+` FROM shows ORDER BY id`)
}

// ListByVenue returns the venue's shows in start time order.
func (r *ShowRepository) ListByVenue(ctx context.Context, venueID int64) ([]model.Show, error) {
	return r.selectShows(ctx, "list venue shows",
		`SELECT `+showColumns+` FROM shows WHERE venue_id = ? ORDER BY start_time, id`, venueID)
}

// ListByArtist returns the artist's shows in start time order.
func (r *ShowRepository) ListByArtist(ctx context.Context, artistID int64) ([]model.Show, error) {
	return r.selectShows(ctx, "list artist shows",
		`SELECT `+showColumns+` FROM shows WHERE artist_id = ? ORDER BY start_time, id`, artistID)
}

func (r *ShowRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, model.EntityShow, "shows")
}

func (r *ShowRepository) selectShows(ctx context.Context, op, query string, args ...any) ([]model.Show, error) {
	shows := []model.Show{}
	if err := sqlx.SelectContext(ctx, r.q, &shows, r.q.Rebind(query), args...); err != nil {
		return nil, sqlerr.ToDomain(fmt.Errorf("%s: %w", op, err), model.EntityShow)
	}
	for i := range shows {
		shows[i].StartTime = shows[i].StartTime.UTC()
	}
	return shows, nil
}
