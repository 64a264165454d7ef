package handler

import (
	"context"
	"net/http"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// TripService defines itinerary generation.
type TripService interface {
	PlanTrip(ctx context.Context, req model.TripPlanRequest) (string, error)
}

// Trip handles itinerary endpoints.
type Trip struct {
	tripService TripService
	logger      *logger.Logger
}

// NewTrip creates a new Trip handler.
func NewTrip(tripService TripService, logger *logger.Logger) *Trip {
	return &Trip{
		tripService: tripService,
		logger:      logger,
	}
}

type planTripRequest struct {
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Interests   string `json:"interests"`
}

type planTripResponse struct {
	Plan string `json:"plan"`
}

// PlanTrip generates a trip itinerary through the external planner.
func (h *Trip) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req planTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Destination == "" || req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "destination and duration are required")
		return
	}

	plan, err := h.tripService.PlanTrip(r.Context(), model.TripPlanRequest{
		Destination: req.Destination,
		Duration:    req.Duration,
		Interests:   req.Interests,
	})
	if err != nil {
		h.logger.Error("Trip handler: failed to plan trip",
			"destination", req.Destination,
			"error", err.Error())
		writeError(w, http.StatusBadGateway, "failed to generate trip plan")
		return
	}

	writeJSON(w, http.StatusOK, planTripResponse{Plan: plan})
}
