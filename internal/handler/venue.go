package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/service"
	"github.com/deppfellow/venue-booking/internal/view"
)

type VenueHandler struct {
	Handler
	venueService *service.VenueService
}

func NewVenueHandler(s *server.Server, venueService *service.VenueService) *VenueHandler {
	return &VenueHandler{
		Handler:      NewHandler(s),
		venueService: venueService,
	}
}

// ListVenues returns every venue grouped by (city, state).
func (h *VenueHandler) ListVenues(c echo.Context, _ *model.ListRequest) ([]view.LocationGroup, error) {
	return h.venueService.ListGroupedByLocation(c.Request().Context(), time.Now())
}

func (h *VenueHandler) SearchVenues(c echo.Context, req *model.SearchRequest) (view.SearchResult[view.VenueView], error) {
	return h.venueService.Search(c.Request().Context(), req.SearchTerm)
}

// GetVenue returns the venue with its shows split around the request time.
func (h *VenueHandler) GetVenue(c echo.Context, req *model.IDRequest) (*view.VenueDetailView, error) {
	return h.venueService.Detail(c.Request().Context(), req.ID, time.Now())
}

// GetVenueForEdit returns the flat record used to prefill the edit form.
func (h *VenueHandler) GetVenueForEdit(c echo.Context, req *model.IDRequest) (*view.VenueView, error) {
	return h.venueService.Get(c.Request().Context(), req.ID)
}

func (h *VenueHandler) CreateVenue(c echo.Context, req *model.VenuePayload) (*view.VenueView, error) {
	return h.venueService.Create(c.Request().Context(), req.Venue())
}

func (h *VenueHandler) UpdateVenue(c echo.Context, req *model.UpdateVenuePayload) (*view.VenueView, error) {
	return h.venueService.Update(c.Request().Context(), req.ID, req.Venue())
}

func (h *VenueHandler) DeleteVenue(c echo.Context, req *model.IDRequest) error {
	return h.venueService.Delete(c.Request().Context(), req.ID)
}
