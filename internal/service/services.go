package service

import (
	"github.com/deppfellow/venue-booking/internal/repository"
	"github.com/deppfellow/venue-booking/internal/server"
)

type Services struct {
	Venue  *VenueService
	Artist *ArtistService
	Show   *ShowService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Venue:  NewVenueService(s, repos),
		Artist: NewArtistService(s, repos),
		Show:   NewShowService(s, repos),
	}, nil
}
