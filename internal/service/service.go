// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Every operation runs in its own repository transaction. Operations that
// depend on the current time take it as an argument; nothing here reads the
// clock.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/venue-booking/internal/errs"
	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/view"
)

// PartitionShows splits shows around now, keeping input order. A show is
// upcoming when it starts strictly after now and past when it starts
// strictly before; a show starting exactly at now is in neither list.
func PartitionShows(shows []model.Show, now time.Time) (upcoming, past []model.Show) {
	upcoming, past = []model.Show{}, []model.Show{}
	for _, s := range shows {
		switch {
		case s.StartTime.After(now):
			upcoming = append(upcoming, s)
		case s.StartTime.Before(now):
			past = append(past, s)
		}
	}
	return upcoming, past
}

type venueLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
}

type artistLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
}

// showJoiner resolves the venue and artist of each show, caching lookups for
// the life of one transaction.
type showJoiner struct {
	venues  venueLookup
	artists artistLookup

	venueCache  map[int64]model.Venue
	artistCache map[int64]model.Artist
}

func newShowJoiner(venues venueLookup, artists artistLookup) *showJoiner {
	return &showJoiner{
		venues:      venues,
		artists:     artists,
		venueCache:  make(map[int64]model.Venue),
		artistCache: make(map[int64]model.Artist),
	}
}

func (j *showJoiner) primeVenue(v model.Venue)   { j.venueCache[v.ID] = v }
func (j *showJoiner) primeArtist(a model.Artist) { j.artistCache[a.ID] = a }

// join returns the show with both sides attached. A side that no longer
// exists is reported as a fatal dangling reference.
func (j *showJoiner) join(ctx context.Context, s model.Show) (view.ShowView, error) {
	venue, ok := j.venueCache[s.VenueID]
	if !ok {
		v, err := j.venues.GetByID(ctx, s.VenueID)
		if err != nil {
			return view.ShowView{}, danglingOr(err, model.EntityVenue, s.VenueID, s.ID)
		}
		venue = *v
		j.primeVenue(venue)
	}

	artist, ok := j.artistCache[s.ArtistID]
	if !ok {
		a, err := j.artists.GetByID(ctx, s.ArtistID)
		if err != nil {
			return view.ShowView{}, danglingOr(err, model.EntityArtist, s.ArtistID, s.ID)
		}
		artist = *a
		j.primeArtist(artist)
	}

	return view.Show(s, venue, artist), nil
}

func (j *showJoiner) joinAll(ctx context.Context, shows []model.Show) ([]view.ShowView, error) {
	out := make([]view.ShowView, 0, len(shows))
	for _, s := range shows {
		joined, err := j.join(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, joined)
	}
	return out, nil
}

func danglingOr(err error, entity string, id, showID int64) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.DanglingReference(entity, id, model.EntityShow, showID)
	}
	return err
}

func requireName(entity, name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.Invalid(entity, errs.EntityTitle(entity)+" name is required",
			errs.FieldError{Field: "name", Error: "is required"})
	}
	return nil
}

// writeFailed gives store-level write failures a message naming the record.
// Validation, referential and not-found errors pass through unchanged.
func writeFailed(entity, name string, err error) error {
	if errors.Is(err, errs.ErrStorage) {
		return errs.WriteFailed(entity, name, err)
	}
	return err
}
