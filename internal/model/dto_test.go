package model

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedTags(t *testing.T, err error) map[string]string {
	t.Helper()

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	tags := make(map[string]string)
	for _, fe := range validationErrors {
		tags[fe.Field()] = fe.Tag()
	}
	return tags
}

func TestVenuePayload_Validate(t *testing.T) {
	valid := VenuePayload{
		Name:    "The Musical Hop",
		Website: "https://www.themusicalhop.com",
		Genres:  []string{"Jazz", "Swing"},
	}
	assert.NoError(t, valid.Validate())

	missingName := VenuePayload{}
	assert.Equal(t, "required", failedTags(t, missingName.Validate())["Name"])

	badLink := VenuePayload{Name: "Hop", FacebookLink: "not a link"}
	assert.Equal(t, "url", failedTags(t, badLink.Validate())["FacebookLink"])

	commaGenre := VenuePayload{Name: "Hop", Genres: []string{"Jazz", "Rock, Pop"}}
	assert.Equal(t, "excludesall", failedTags(t, commaGenre.Validate())["Genres[1]"])
}

func TestVenuePayload_Defaults(t *testing.T) {
	p := VenuePayload{Name: "  The Musical Hop ", Genres: []string{" Jazz", "", "Swing "}}
	v := p.Venue()

	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, "Jazz,Swing", v.Genres)
	assert.True(t, v.SeekingTalent)
	assert.Equal(t, DefaultSeekingDescription, v.SeekingDescription)

	no, custom := false, "Open mic on Fridays"
	p.SeekingTalent = &no
	p.SeekingDescription = &custom
	v = p.Venue()
	assert.False(t, v.SeekingTalent)
	assert.Equal(t, custom, v.SeekingDescription)
}

func TestArtistPayload(t *testing.T) {
	p := ArtistPayload{Name: "Guns N Petals", Genres: []string{"Rock n Roll"}}
	require.NoError(t, p.Validate())

	a := p.Artist()
	assert.Equal(t, "Rock n Roll", a.Genres)
	assert.False(t, a.SeekingVenue)
	assert.Empty(t, a.SeekingDescription)
}

func TestUpdatePayload_RequiresID(t *testing.T) {
	p := UpdateVenuePayload{VenuePayload: VenuePayload{Name: "Hop"}}
	assert.Equal(t, "required", failedTags(t, p.Validate())["ID"])

	p.ID = 3
	assert.NoError(t, p.Validate())
}

func TestCreateShowPayload_Validate(t *testing.T) {
	assert.NoError(t, (&CreateShowPayload{VenueID: 1, ArtistID: 2}).Validate())

	tags := failedTags(t, (&CreateShowPayload{ArtistID: -1}).Validate())
	assert.Equal(t, "required", tags["VenueID"])
	assert.Equal(t, "gt", tags["ArtistID"])
}
