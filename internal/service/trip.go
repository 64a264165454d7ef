package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// Trip proxies itinerary requests to the external planner and caches
// generated plans so identical requests are not re-generated within the TTL.
type Trip struct {
	planner  model.TripPlanner
	cache    model.TripCache
	cacheTTL time.Duration
	logger   *logger.Logger
}

func NewTrip(
	planner model.TripPlanner,
	cache model.TripCache,
	cacheTTL time.Duration,
	logger *logger.Logger,
) *Trip {
	return &Trip{
		planner:  planner,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// PlanTrip returns an itinerary for the request, from cache when available.
// Cache failures degrade to calling the planner directly.
func (s *Trip) PlanTrip(ctx context.Context, req model.TripPlanRequest) (string, error) {
	key := cacheKey(req)

	if s.cache != nil {
		plan, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Error("Trip service: cache lookup failed", "error", err.Error())
		} else if ok {
			s.logger.Debug("Trip service: cache hit", "destination", req.Destination)
			return plan, nil
		}
	}

	plan, err := s.planner.PlanTrip(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate trip plan: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, plan, s.cacheTTL); err != nil {
			s.logger.Error("Trip service: cache store failed", "error", err.Error())
		}
	}

	s.logger.Info("Trip service: plan generated",
		"destination", req.Destination,
		"duration", req.Duration)

	return plan, nil
}

func cacheKey(req model.TripPlanRequest) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%s", req.Destination, req.Duration, req.Interests))
	return "trip:" + hex.EncodeToString(h[:])
}
