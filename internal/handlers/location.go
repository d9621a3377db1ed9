package handlers

//go:generate mockgen -source=location.go -destination=location_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/geo-articles/internal/geo"
	"github.com/sbilibin2017/geo-articles/internal/middlewares"
	"github.com/sbilibin2017/geo-articles/internal/services"
	"github.com/sbilibin2017/geo-articles/internal/validation"
)

// LocationUpdater stores a user's position.
type LocationUpdater interface {
	UpdateLocation(ctx context.Context, userID int64, p geo.Point) error
}

// LocationRequest represents the JSON body of a location update
// swagger:model LocationRequest
type LocationRequest struct {
	// required: true
	// example: 48.8566
	Latitude *float64 `json:"latitude" validate:"required,latitude"`

	// required: true
	// example: 2.3522
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// NewLocationHandler returns an HTTP handler that stores the user's location.
// @Summary Update location
// @Description Stores the current user's coordinates and echoes them back
// @Tags user
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param locationRequest body handlers.LocationRequest true "Coordinates"
// @Success 200 {object} geo.Point
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /user/location [put]
func NewLocationHandler(svc LocationUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req LocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validation.ValidateStruct(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		p := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if err := svc.UpdateLocation(r.Context(), userID, p); err != nil {
			switch {
			case errors.Is(err, geo.ErrInvalidCoordinates):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}
