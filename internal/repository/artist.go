package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/sqlerr"
)

const artistColumns = `id, name, city, state, phone, website, facebook_link, image_link,
	genres, seeking_venue, seeking_description`

type ArtistRepository struct {
	q sqlx.ExtContext
}

// Create inserts a and sets its generated id.
func (r *ArtistRepository) Create(ctx context.Context, a *model.Artist) error {
	query := r.q.Rebind(`
		INSERT INTO artists (name, city, state, phone, website, facebook_link, image_link,
			genres, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.q.QueryRowxContext(ctx, query,
		a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.ImageLink,
		a.Genres, a.SeekingVenue, a.SeekingDescription,
	).Scan(&a.ID)
	if err != nil {
		return sqlerr.ToDomain(fmt.Errorf("insert artist: %w", err), model.EntityArtist)
	}
	return nil
}

func (r *ArtistRepository) Update(ctx context.Context, a *model.Artist) error {
	return execOne(ctx, r.q, model.EntityArtist, a.ID, "update", `
		UPDATE artists SET name = ?, city = ?, state = ?, phone = ?, website = ?,
			facebook_link = ?, image_link = ?, genres = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`,
		a.Name, a.City, a.State, a.Phone, a.Website, a.FacebookLink, a.ImageLink,
		a.Genres, a.SeekingVenue, a.SeekingDescription, a.ID,
	)
}

// Delete removes the artist and, by cascade, the artist's shows.
func (r *ArtistRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.q, model.EntityArtist, id, "delete", `DELETE FROM artists WHERE id = ?`, id)
}

func (r *ArtistRepository) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	var a model.Artist
	if err := getOne(ctx, r.q, &a, model.EntityArtist, id,
		`SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ArtistRepository) List(ctx context.Context) ([]model.Artist, error) {
	artists := []model.Artist{}
	if err := sqlx.SelectContext(ctx, r.q, &artists,
		`SELECT `+artistColumns+` FROM artists ORDER BY id`); err != nil {
		return nil, sqlerr.ToDomain(fmt.Errorf("list artists: %w", err), model.EntityArtist)
	}
	return artists, nil
}

func (r *ArtistRepository) Search(ctx context.Context, term string) ([]model.Artist, error) {
	artists := []model.Artist{}
	query := r.q.Rebind(`SELECT ` + artistColumns + ` FROM artists WHERE ` + nameMatches(r.q) + ` ORDER BY id`)
	if err := sqlx.SelectContext(ctx, r.q, &artists, query, containsPattern(term)); err != nil {
		return nil, sqlerr.ToDomain(fmt.Errorf("search artists: %w", err), model.EntityArtist)
	}
	return artists, nil
}

func (r *ArtistRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.q, model.EntityArtist, "artists")
}
