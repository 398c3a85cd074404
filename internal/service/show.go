package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/repository"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/view"
)

type ShowService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewShowService(s *server.Server, repos *repository.Repositories) *ShowService {
	return &ShowService{
		server: s,
		repos:  repos,
	}
}

// ListWithDetails returns every show joined with its venue and artist,
// ordered by show id.
func (s *ShowService) ListWithDetails(ctx context.Context) ([]view.ShowView, error) {
	var shows []view.ShowView

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		stored, err := tx.Shows.List(ctx)
		if err != nil {
			return err
		}

		shows, err = newShowJoiner(tx.Venues, tx.Artists).joinAll(ctx, stored)
		return err
	})
	if err != nil {
		return nil, err
	}

	return shows, nil
}

// Create books artistID at venueID. Both must exist; otherwise nothing is
// written and a referential error names the missing side. A zero startTime
// means now.
func (s *ShowService) Create(ctx context.Context, venueID, artistID int64, startTime, now time.Time) (*view.ShowView, error) {
	logger := s.server.Logger

	if startTime.IsZero() {
		startTime = now
	}

	show := model.Show{
		VenueID:   venueID,
		ArtistID:  artistID,
		StartTime: startTime,
	}

	var created view.ShowView
	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		venue, err := tx.Venues.GetByID(ctx, venueID)
		if err != nil {
			return missingOr(err, model.EntityVenue, venueID)
		}

		artist, err := tx.Artists.GetByID(ctx, artistID)
		if err != nil {
			return missingOr(err, model.EntityArtist, artistID)
		}

		if err := tx.Shows.Create(ctx, &show); err != nil {
			return err
		}

		created = view.Show(show, *venue, *artist)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).
			Int64("venue_id", venueID).
			Int64("artist_id", artistID).
			Msg("failed to create show")
		return nil, writeFailed(model.EntityShow, fmt.Sprintf("%d/%d", venueID, artistID), err)
	}

	logger.Info().
		Int64("show_id", show.ID).
		Int64("venue_id", venueID).
		Int64("artist_id", artistID).
		Time("start_time", show.StartTime).
		Msg("show created successfully")

	return &created, nil
}

func missingOr(err error, entity string, id int64) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.MissingReference(entity, id)
	}
	return err
}
