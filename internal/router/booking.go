package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/venue-booking/internal/handler"
	"github.com/deppfellow/venue-booking/internal/model"
)

func registerBookingRoutes(r *echo.Echo, h *handler.Handlers) {
	venues := r.Group("/venues")
	venues.GET("", handler.Handle(h.Venue.Handler, h.Venue.ListVenues, http.StatusOK, &model.ListRequest{}))
	venues.POST("", handler.Handle(h.Venue.Handler, h.Venue.CreateVenue, http.StatusCreated, &model.VenuePayload{}))
	venues.POST("/search", handler.Handle(h.Venue.Handler, h.Venue.SearchVenues, http.StatusOK, &model.SearchRequest{}))
	venues.GET("/:id", handler.Handle(h.Venue.Handler, h.Venue.GetVenue, http.StatusOK, &model.IDRequest{}))
	venues.GET("/:id/edit", handler.Handle(h.Venue.Handler, h.Venue.GetVenueForEdit, http.StatusOK, &model.IDRequest{}))
	venues.PUT("/:id", handler.Handle(h.Venue.Handler, h.Venue.UpdateVenue, http.StatusOK, &model.UpdateVenuePayload{}))
	venues.DELETE("/:id", handler.HandleNoContent(h.Venue.Handler, h.Venue.DeleteVenue, http.StatusNoContent, &model.IDRequest{}))

	artists := r.Group("/artists")
	artists.GET("", handler.Handle(h.Artist.Handler, h.Artist.ListArtists, http.StatusOK, &model.ListRequest{}))
	artists.POST("", handler.Handle(h.Artist.Handler, h.Artist.CreateArtist, http.StatusCreated, &model.ArtistPayload{}))
	artists.POST("/search", handler.Handle(h.Artist.Handler, h.Artist.SearchArtists, http.StatusOK, &model.SearchRequest{}))
	artists.GET("/:id", handler.Handle(h.Artist.Handler, h.Artist.GetArtist, http.StatusOK, &model.IDRequest{}))
	artists.GET("/:id/edit", handler.Handle(h.Artist.Handler, h.Artist.GetArtistForEdit, http.StatusOK, &model.IDRequest{}))
	artists.PUT("/:id", handler.Handle(h.Artist.Handler, h.Artist.UpdateArtist, http.StatusOK, &model.UpdateArtistPayload{}))
	artists.DELETE("/:id", handler.HandleNoContent(h.Artist.Handler, h.Artist.DeleteArtist, http.StatusNoContent, &model.IDRequest{}))

	shows := r.Group("/shows")
	shows.GET("", handler.Handle(h.Show.Handler, h.Show.ListShows, http.StatusOK, &model.ListRequest{}))
	shows.POST("", handler.Handle(h.Show.Handler, h.Show.CreateShow, http.StatusCreated, &model.CreateShowPayload{}))
}
