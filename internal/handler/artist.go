package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/model"
	"github.com/deppfellow/venue-booking/internal/server"
	"github.com/deppfellow/venue-booking/internal/service"
	"github.com/deppfellow/venue-booking/internal/view"
)

type ArtistHandler struct {
	Handler
	artistService *service.ArtistService
}

func NewArtistHandler(s *server.Server, artistService *service.ArtistService) *ArtistHandler {
	return &ArtistHandler{
		Handler:       NewHandler(s),
		artistService: artistService,
	}
}

func (h *ArtistHandler) ListArtists(c echo.Context, _ *model.ListRequest) ([]view.ArtistSummary, error) {
	return h.artistService.List(c.Request().Context())
}

func (h *ArtistHandler) SearchArtists(c echo.Context, req *model.SearchRequest) (view.SearchResult[view.ArtistView], error) {
	return h.artistService.Search(c.Request().Context(), req.SearchTerm)
}

func (h *ArtistHandler) GetArtist(c echo.Context, req *model.IDRequest) (*view.ArtistDetailView, error) {
	return h.artistService.Detail(c.Request().Context(), req.ID, time.Now())
}

func (h *ArtistHandler) GetArtistForEdit(c echo.Context, req *model.IDRequest) (*view.ArtistView, error) {
	return h.artistService.Get(c.Request().Context(), req.ID)
}

func (h *ArtistHandler) CreateArtist(c echo.Context, req *model.ArtistPayload) (*view.ArtistView, error) {
	return h.artistService.Create(c.Request().Context(), req.Artist())
}

func (h *ArtistHandler) UpdateArtist(c echo.Context, req *model.UpdateArtistPayload) (*view.ArtistView, error) {
	return h.artistService.Update(c.Request().Context(), req.ID, req.Artist())
}

func (h *ArtistHandler) DeleteArtist(c echo.Context, req *model.IDRequest) error {
	return h.artistService.Delete(c.Request().Context(), req.ID)
}
