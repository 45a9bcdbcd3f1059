// Package feed assembles the public restaurant feed: the backend's hotel
// list filtered to bookable entries, optionally ranked by distance from
// the caller.
package feed

import (
	"context"

	"tablenow/backend"
	"tablenow/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Origin is the caller's position used for distance ranking.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// FeedService serves the restaurant feed.
type FeedService interface {
	// Restaurants returns approved, active restaurants. When origin is
	// non-nil each entry carries its distance and the list is sorted
	// nearest first.
	Restaurants(ctx context.Context, origin *Origin) ([]models.Restaurant, error)
	// Menus returns a restaurant's menu items.
	Menus(ctx context.Context, restaurantID int64) ([]models.Menu, error)
}

// DefaultFeedService is the production implementation. The raw hotel list
// is cached in Redis; filtering and ranking run per request.
type DefaultFeedService struct {
	Backend *backend.Client
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewFeedService creates the restaurant feed service.
func NewFeedService(api *backend.Client, cache *redis.Client, logger *zap.Logger) *DefaultFeedService {
	return &DefaultFeedService{Backend: api, Cache: cache, Logger: logger}
}
