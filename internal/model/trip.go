package model

import (
	"context"
	"time"
)

// TripPlanner produces an itinerary for a trip request. Implementations call
// out to an external generative service and are treated as opaque.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req TripPlanRequest) (string, error)
}

// TripCache stores generated itineraries keyed by request.
type TripCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, plan string, ttl time.Duration) error
}

// TripPlanRequest describes the trip to plan.
type TripPlanRequest struct {
	Destination string
	Duration    int
	Interests   string
}
