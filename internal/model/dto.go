package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ------------------------------------------------------------

type IDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *IDRequest) Validate() error {
	return validate.Struct(r)
}

// ListRequest carries no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// SearchRequest is accepted as JSON or as a form post.
type SearchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term" validate:"max=255"`
}

func (r *SearchRequest) Validate() error {
	return validate.Struct(r)
}

// ------------------------------------------------------------

type VenuePayload struct {
	Name               string   `json:"name" validate:"required,max=255"`
	City               string   `json:"city" validate:"max=120"`
	State              string   `json:"state" validate:"max=120"`
	Address            string   `json:"address" validate:"max=120"`
	Phone              string   `json:"phone" validate:"max=120"`
	Website            string   `json:"website" validate:"omitempty,url,max=120"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `json:"genres" validate:"max=20,dive,required,excludesall=0x2C,max=50"`
	SeekingTalent      *bool    `json:"seeking_talent"`
	SeekingDescription *string  `json:"seeking_description" validate:"omitempty,max=500"`
}

func (p *VenuePayload) Validate() error {
	return validate.Struct(p)
}

// Venue builds the record to store. An absent seeking_talent means true and
// an absent seeking_description gets the standard text.
func (p *VenuePayload) Venue() Venue {
	v := Venue{
		Name:               strings.TrimSpace(p.Name),
		City:               p.City,
		State:              p.State,
		Address:            p.Address,
		Phone:              p.Phone,
		Website:            p.Website,
		FacebookLink:       p.FacebookLink,
		ImageLink:          p.ImageLink,
		Genres:             JoinGenres(trimGenres(p.Genres)),
		SeekingTalent:      true,
		SeekingDescription: DefaultSeekingDescription,
	}
	if p.SeekingTalent != nil {
		v.SeekingTalent = *p.SeekingTalent
	}
	if p.SeekingDescription != nil {
		v.SeekingDescription = *p.SeekingDescription
	}
	return v
}

type UpdateVenuePayload struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	VenuePayload
}

func (p *UpdateVenuePayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type ArtistPayload struct {
	Name               string   `json:"name" validate:"required,max=255"`
	City               string   `json:"city" validate:"max=120"`
	State              string   `json:"state" validate:"max=120"`
	Phone              string   `json:"phone" validate:"max=120"`
	Website            string   `json:"website" validate:"omitempty,url,max=120"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url,max=120"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `json:"genres" validate:"max=20,dive,required,excludesall=0x2C,max=50"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" validate:"max=500"`
}

func (p *ArtistPayload) Validate() error {
	return validate.Struct(p)
}

func (p *ArtistPayload) Artist() Artist {
	return Artist{
		Name:               strings.TrimSpace(p.Name),
		City:               p.City,
		State:              p.State,
		Phone:              p.Phone,
		Website:            p.Website,
		FacebookLink:       p.FacebookLink,
		ImageLink:          p.ImageLink,
		Genres:             JoinGenres(trimGenres(p.Genres)),
		SeekingVenue:       p.SeekingVenue,
		SeekingDescription: p.SeekingDescription,
	}
}

type UpdateArtistPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	ArtistPayload
}

func (p *UpdateArtistPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

// CreateShowPayload books an artist at a venue. StartTime is RFC 3339; when
// omitted the show starts at request time.
type CreateShowPayload struct {
	VenueID   int64      `json:"venue_id" validate:"required,gt=0"`
	ArtistID  int64      `json:"artist_id" validate:"required,gt=0"`
	StartTime *time.Time `json:"start_time"`
}

func (p *CreateShowPayload) Validate() error {
	return validate.Struct(p)
}

func trimGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
