package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/service"
	"github.com/deppfellow/venue-booking/internal/view"
)

type ShowHandler struct {
	Handler
	showService *service.ShowService
}

func NewShowHandler(s *server.Server, showService *service.ShowService) *ShowHandler {
	return &ShowHandler{
		Handler:     NewHandler(s),
		showService: showService,
	}
}

// ListShows returns every show joined with its venue and artist names.
func (h *ShowHandler) ListShows(c echo.Context, _ *model.ListRequest) ([]view.ShowView, error) {
	return h.showService.ListWithDetails(c.Request().Context())
}

// CreateShow books an artist at a venue. A missing start_time means now.
func (h *ShowHandler) CreateShow(c echo.Context, req *model.CreateShowPayload) (*view.ShowView, error) {
	var startTime time.Time
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	return h.showService.Create(c.Request().Context(), req.VenueID, req.ArtistID, startTime, time.Now())
}
