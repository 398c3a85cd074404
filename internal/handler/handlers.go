package handler

import (
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health *HealthHandler
	Venue  *VenueHandler
	Artist *ArtistHandler
	Show   *ShowHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Venue:  NewVenueHandler(s, services.Venue),
		Artist: NewArtistHandler(s, services.Artist),
		Show:   NewShowHandler(s, services.Show),
	}
}
