package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/sqlerr"
)

const venueColumns = `id, name, city, state, address, phone, website, facebook_link,
	image_link, genres, seeking_talent, seeking_description`

type VenueRepository struct {
	q sqlx.ExtContext
}

// Create inserts v and sets its generated id.
func (r *VenueRepository) Create(ctx context.Context, v *model.Venue) error {
	query := r.q.Rebind(`
		INSERT INTO venues (name, city, state, address, phone, website, facebook_link,
			image_link, genres, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.q.QueryRowxContext(ctx, query,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Website, v.FacebookLink,
		v.ImageLink, v.Genres, v.SeekingTalent, v.SeekingDescription,
	).Scan(&v.ID)
	if err != nil {
		return sqlerr.ToDomain(fmt.Errorf("insert venue: %w", err), model.EntityVenue)
	}
	return nil
}

// Update overwrites every mutable column of v.
func (r *VenueRepository) Update(ctx context.Context, v *model.Venue) error {
	return execOne(ctx, r.q, model.EntityVenue, v.ID, "update", `
		UPDATE venues SET name = ?, city = ?, state = ?, address = ?, phone = ?, website = ?,
			facebook_link = ?, image_link = ?, genres = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`,
		v.Name, v.City, v.State, v.Address, v.Phone, v.Website, v.FacebookLink,
		v.ImageLink, v.Genres, v.SeekingTalent, v.SeekingDescription, v.ID,
	)
}

// Delete removes the venue; its shows go with it (ON DELETE CASCADE).
func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, model.EntityVenue, id, "delete", `DELETE FROM venues WHERE id = ?`, id)
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	var v model.Venue
	if err := getOne(ctx, r.q, &v, model.EntityVenue, id,
		`SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id.
func (r *VenueRepository) List(ctx context.Context) ([]model.Venue, error) {
	venues := []model.Venue{}
	if err := sqlx.SelectContext(ctx, r.q, &venues,
		`SELECT `+venueColumns+` FROM venues ORDER BY id`); err != nil {
		return nil, sqlerr.ToDomain(fmt.Errorf("list venues: %w", err), model.EntityVenue)
	}
	return venues, nil
}

// Search matches term case-insensitively anywhere in the name, ordered by id.
// An empty term matches every venue.
func (r *VenueRepository) Search(ctx context.Context, term string) ([]model.Venue, error) {
	venues := []model.Venue{}
	query := r.q.Rebind(`SELECT ` + venueColumns + ` FROM venues WHERE ` + nameMatches(r.q) + ` ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &venues, query, containsPattern(term)); err != nil {
		return nil, sqlerr.ToDomain(fmt.Errorf("search venues: %w", err), model.EntityVenue)
	}
	return venues, nil
}

func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, model.EntityVenue, "venues")
}
