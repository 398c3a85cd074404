// Package model holds the persisted records of the booking directory.
//
// Records mirror table rows one to one; display shapes live in the view
// package.
package model

import (
	"strings"
	"time"
)

// GenreDelimiter separates genre tags in the stored genres column.
const GenreDelimiter = ","

// DefaultSeekingDescription is stored for venues created without one.
const DefaultSeekingDescription = "We are on the lookout for a local artist to play every two weeks. Please call us."

// Entity names used in errors and logs.
const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

type Venue struct {
	ID                 int64  `db:"id"`
	Name               string `db:"name"`
	City               string `db:"city"`
	State              string `db:"state"`
	Address            string `db:"address"`
	Phone              string `db:"phone"`
	Website            string `db:"website"`
	FacebookLink       string `db:"facebook_link"`
	ImageLink          string `db:"image_link"`
	Genres             string `db:"genres"`
	SeekingTalent      bool   `db:"seeking_talent"`
	SeekingDescription string `db:"seeking_description"`
}

// GenreList splits the stored genres into tags.
func (v Venue) GenreList() []string {
	return SplitGenres(v.Genres)
}

type Artist struct {
	ID                 int64  `db:"id"`
	Name               string `db:"name"`
	City               string `db:"city"`
	State              string `db:"state"`
	Phone              string `db:"phone"`
	Website            string `db:"website"`
	FacebookLink       string `db:"facebook_link"`
	ImageLink          string `db:"image_link"`
	Genres             string `db:"genres"`
	SeekingVenue       bool   `db:"seeking_venue"`
	SeekingDescription string `db:"seeking_description"`
}

func (a Artist) GenreList() []string {
	return SplitGenres(a.Genres)
}

// Show links one venue and one artist at a start time.
type Show struct {
	ID        int64     `db:"id"`
	VenueID   int64     `db:"venue_id"`
	ArtistID  int64     `db:"artist_id"`
	StartTime time.Time `db:"start_time"`
}

// NormalizeTime returns t in UTC truncated to the precision both storage
// backends keep, so a value reads back equal to what was written.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// SplitGenres explodes a stored genres value. An empty value yields an empty,
// non-nil list.
func SplitGenres(genres string) []string {
	if genres == "" {
		return []string{}
	}
	return strings.Split(genres, GenreDelimiter)
}

// JoinGenres is the inverse of SplitGenres for delimiter-free tags.
func JoinGenres(genres []string) string {
	return strings.Join(genres, GenreDelimiter)
}
