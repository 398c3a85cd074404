package service

import (
	"context"
	"time"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/repository"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/view"
)

type ArtistService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewArtistService(s *server.Server, repos *repository.Repositories) *ArtistService {
	return &ArtistService{
		server: s,
		repos:  repos,
	}
}

// List returns every artist as an id/name pair, ordered by id.
func (s *ArtistService) List(ctx context.Context) ([]view.ArtistSummary, error) {
	var artists []model.Artist

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		var err error
		artists, err = tx.Artists.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view.ArtistSummaries(artists), nil
}

func (s *ArtistService) Search(ctx context.Context, term string) (view.SearchResult[view.ArtistView], error) {
	var artists []model.Artist

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		var err error
		artists, err = tx.Artists.Search(ctx, term)
		return err
	})
	if err != nil {
		return view.SearchResult[view.ArtistView]{}, err
	}

	return view.NewSearchResult(view.Artists(artists)), nil
}

// Detail returns the artist with its shows split around now.
func (s *ArtistService) Detail(ctx context.Context, id int64, now time.Time) (*view.ArtistDetailView, error) {
	var detail view.ArtistDetailView

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		artist, err := tx.Artists.GetByID(ctx, id)
		if err != nil {
			return err
		}

		shows, err := tx.Shows.ListByArtist(ctx, id)
		if err != nil {
			return err
		}

		joiner := newShowJoiner(tx.Venues, tx.Artists)
		joiner.primeArtist(*artist)

		upcoming, past := PartitionShows(shows, now)
		upcomingViews, err := joiner.joinAll(ctx, upcoming)
		if err != nil {
			return err
		}
		pastViews, err := joiner.joinAll(ctx, past)
		if err != nil {
			return err
		}

		detail = view.ArtistDetail(*artist, upcomingViews, pastViews)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (s *ArtistService) Get(ctx context.Context, id int64) (*view.ArtistView, error) {
	var artist *model.Artist

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		var err error
		artist, err = tx.Artists.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	a := view.Artist(*artist)
	return &a, nil
}

func (s *ArtistService) Create(ctx context.Context, artist model.Artist) (*view.ArtistView, error) {
	logger := s.server.Logger

	if err := requireName(model.EntityArtist, artist.Name); err != nil {
		return nil, err
	}
	artist.ID = 0

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Artists.Create(ctx, &artist)
	})
	if err != nil {
		logger.Error().Err(err).Str("artist_name", artist.Name).Msg("failed to create artist")
		return nil, writeFailed(model.EntityArtist, artist.Name, err)
	}

	logger.Info().
		Int64("artist_id", artist.ID).
		Str("artist_name", artist.Name).
		Msg("artist created successfully")

	a := view.Artist(artist)
	return &a, nil
}

func (s *ArtistService) Update(ctx context.Context, id int64, artist model.Artist) (*view.ArtistView, error) {
	logger := s.server.Logger

	if err := requireName(model.EntityArtist, artist.Name); err != nil {
		return nil, err
	}
	artist.ID = id

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Artists.Update(ctx, &artist)
	})
	if err != nil {
		logger.Error().Err(err).Int64("artist_id", id).Msg("failed to update artist")
		return nil, writeFailed(model.EntityArtist, artist.Name, err)
	}

	logger.Info().Int64("artist_id", id).Msg("artist updated successfully")

	a := view.Artist(artist)
	return &a, nil
}

// Delete removes the artist together with its shows.
func (s *ArtistService) Delete(ctx context.Context, id int64) error {
	logger := s.server.Logger

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Artists.Delete(ctx, id)
	})
	if err != nil {
		logger.Error().Err(err).Int64("artist_id", id).Msg("failed to delete artist")
		return err
	}

	logger.Info().Int64("artist_id", id).Msg("artist deleted successfully")
	return nil
}
