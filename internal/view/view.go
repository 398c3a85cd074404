// Package view turns stored records into the JSON shapes served to clients.
//
// Everything here is a pure transform: relationships must already be resolved
// by the caller, and no function touches the store or the clock.
package view

import (
	"github.com/deppfellow/venue-booking/internal/model"
)

// StartTimeLayout renders show start times as MM/DD/YYYY, HH:MM:SS.
const StartTimeLayout = "01/02/2006, 15:04:05"

type VenueView struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

type ArtistView struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	ImageLink          string   `json:"image_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
}

// ArtistSummary is the artist list entry.
type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShowView is a show joined with the venue and artist it references.
type ShowView struct {
	ID        int64      `json:"id"`
	StartTime string     `json:"start_time"`
	Venue     VenueView  `json:"venue"`
	Artist    ArtistView `json:"artist"`
}

// VenueSummary is a venue inside a location group.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

type LocationGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// ShowPartition holds shows split around an evaluation instant.
type ShowPartition struct {
	UpcomingShows      []ShowView `json:"upcoming_shows"`
	PastShows          []ShowView `json:"past_shows"`
	UpcomingShowsCount int        `json:"upcoming_shows_count"`
	PastShowsCount     int        `json:"past_shows_count"`
}

type VenueDetailView struct {
	VenueView
	ShowPartition
}

type ArtistDetailView struct {
	ArtistView
	ShowPartition
}

// SearchResult is the response of a name search.
type SearchResult[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

func Venue(v model.Venue) VenueView {
	return VenueView{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             v.GenreList(),
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		ImageLink:          v.ImageLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func Artist(a model.Artist) ArtistView {
	return ArtistView{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             a.GenreList(),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		ImageLink:          a.ImageLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func Venues(venues []model.Venue) []VenueView {
	out := make([]VenueView, 0, len(venues))
	for _, v := range venues {
		out = append(out, Venue(v))
	}
	return out
}

func Artists(artists []model.Artist) []ArtistView {
	out := make([]ArtistView, 0, len(artists))
	for _, a := range artists {
		out = append(out, Artist(a))
	}
	return out
}

func ArtistSummaries(artists []model.Artist) []ArtistSummary {
	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out
}

// Show joins s with its venue and artist. The caller resolves both; start
// time is rendered in UTC.
func Show(s model.Show, venue model.Venue, artist model.Artist) ShowView {
	return ShowView{
		ID:        s.ID,
		StartTime: s.StartTime.UTC().Format(StartTimeLayout),
		Venue:     Venue(venue),
		Artist:    Artist(artist),
	}
}

// Partition wraps already-split show lists with their counts. Nil inputs
// serialize as empty lists.
func Partition(upcoming, past []ShowView) ShowPartition {
	if upcoming == nil {
		upcoming = []ShowView{}
	}
	if past == nil {
		past = []ShowView{}
	}
	return ShowPartition{
		UpcomingShows:      upcoming,
		PastShows:          past,
		UpcomingShowsCount: len(upcoming),
		PastShowsCount:     len(past),
	}
}

func VenueDetail(v model.Venue, upcoming, past []ShowView) VenueDetailView {
	return VenueDetailView{
		VenueView:     Venue(v),
		ShowPartition: Partition(upcoming, past),
	}
}

func ArtistDetail(a model.Artist, upcoming, past []ShowView) ArtistDetailView {
	return ArtistDetailView{
		ArtistView:    Artist(a),
		ShowPartition: Partition(upcoming, past),
	}
}

// GroupByLocation buckets venues by exact (city, state). Groups keep the
// order in which their first venue appears, and venues keep input order
// within a group. upcoming maps venue id to its upcoming show count; missing
// ids count as zero.
func GroupByLocation(venues []model.Venue, upcoming map[int64]int) []LocationGroup {
	type location struct{ city, state string }

	groups := []LocationGroup{}
	index := make(map[location]int)

	for _, v := range venues {
		key := location{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LocationGroup{City: v.City, State: v.State, Venues: []VenueSummary{}})
		}
		groups[i].Venues = append(groups[i].Venues, VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: upcoming[v.ID],
		})
	}

	return groups
}

// NewSearchResult wraps matches with their count.
func NewSearchResult[T any](data []T) SearchResult[T] {
	if data == nil {
		data = []T{}
	}
	return SearchResult[T]{Count: len(data), Data: data}
}
