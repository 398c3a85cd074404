package service

import (
	"context"
	"time"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/repository"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/view"
)

type VenueService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewVenueService(s *server.Server, repos *repository.Repositories) *VenueService {
	return &VenueService{
		server: s,
		repos:  repos,
	}
}

// ListGroupedByLocation groups every venue by (city, state) and annotates each
// with the number of its shows starting after now.
func (s *VenueService) ListGroupedByLocation(ctx context.Context, now time.Time) ([]view.LocationGroup, error) {
	var groups []view.LocationGroup

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		venues, err := tx.Venues.List(ctx)
		if err != nil {
			return err
		}

		shows, err := tx.Shows.List(ctx)
		if err != nil {
			return err
		}

		upcoming, _ := PartitionShows(shows, now)
		counts := make(map[int64]int, len(venues))
		for _, show := range upcoming {
			counts[show.VenueID]++
		}

		groups = view.GroupByLocation(venues, counts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Search matches term against venue names, case-insensitively.
func (s *VenueService) Search(ctx context.Context, term string) (view.SearchResult[view.VenueView], error) {
	var venues []model.Venue

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		var err error
		venues, err = tx.Venues.Search(ctx, term)
		return err
	})
	if err != nil {
		return view.SearchResult[view.VenueView]{}, err
	}

	return view.NewSearchResult(view.Venues(venues)), nil
}

// Detail returns the venue with its shows split around now.
func (s *VenueService) Detail(ctx context.Context, id int64, now time.Time) (*view.VenueDetailView, error) {
	var detail view.VenueDetailView

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		venue, err := tx.Venues.GetByID(ctx, id)
		if err != nil {
			return err
		}

		shows, err := tx.Shows.ListByVenue(ctx, id)
		if err != nil {
			return err
		}

		joiner := newShowJoiner(tx.Venues, tx.Artists)
		joiner.primeVenue(*venue)

		upcoming, past := PartitionShows(shows, now)
		upcomingViews, err := joiner.joinAll(ctx, upcoming)
		if err != nil {
			return err
		}
		pastViews, err := joiner.joinAll(ctx, past)
		if err != nil {
			return err
		}

		detail = view.VenueDetail(*venue, upcomingViews, pastViews)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// Get returns the flat venue, as used to prefill an edit form.
func (s *VenueService) Get(ctx context.Context, id int64) (*view.VenueView, error) {
	var venue *model.Venue

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		var err error
		venue, err = tx.Venues.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	v := view.Venue(*venue)
	return &v, nil
}

func (s *VenueService) Create(ctx context.Context, venue model.Venue) (*view.VenueView, error) {
	logger := s.server.Logger

	if err := requireName(model.EntityVenue, venue.Name); err != nil {
		return nil, err
	}
	venue.ID = 0

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Venues.Create(ctx, &venue)
	})
	if err != nil {
		logger.Error().Err(err).Str("venue_name", venue.Name).Msg("failed to create venue")
		return nil, writeFailed(model.EntityVenue, venue.Name, err)
	}

	logger.Info().
		Int64("venue_id", venue.ID).
		Str("venue_name", venue.Name).
		Msg("venue created successfully")

	v := view.Venue(venue)
	return &v, nil
}

// Update replaces every editable field of venue id.
func (s *VenueService) Update(ctx context.Context, id int64, venue model.Venue) (*view.VenueView, error) {
	logger := s.server.Logger

	if err := requireName(model.EntityVenue, venue.Name); err != nil {
		return nil, err
	}
	venue.ID = id

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Venues.Update(ctx, &venue)
	})
	if err != nil {
		logger.Error().Err(err).Int64("venue_id", id).Msg("failed to update venue")
		return nil, writeFailed(model.EntityVenue, venue.Name, err)
	}

	logger.Info().Int64("venue_id", id).Msg("venue updated successfully")

	v := view.Venue(venue)
	return &v, nil
}

// Delete removes the venue together with its shows.
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	logger := s.server.Logger

	err := s.repos.InTx(ctx, func(tx *repository.Tx) error {
		return tx.Venues.Delete(ctx, id)
	})
	if err != nil {
		logger.Error().Err(err).Int64("venue_id", id).Msg("failed to delete venue")
		return err
	}

	logger.Info().Int64("venue_id", id).Msg("venue deleted successfully")
	return nil
}
