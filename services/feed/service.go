package feed

import (
	"context"
	"encoding/json"
	"sort"

	"tablenow/models"
	"tablenow/utils"

	"go.uber.org/zap"
)

const statusActive = "active"

// Restaurants returns the bookable restaurant feed, ranked by distance when
// an origin is supplied.
func (s *DefaultFeedService) Restaurants(ctx context.Context, origin *Origin) ([]models.Restaurant, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]models.Restaurant, 0, len(all))
	for _, r := range all {
		if !r.IsApproved || r.Status != statusActive {
			continue
		}
		if origin != nil {
			r.DistanceKm = utils.HaversineDistance(origin.Latitude, origin.Longitude, r.Latitude, r.Longitude)
		}
		feed = append(feed, r)
	}

	if origin != nil {
		sort.Slice(feed, func(i, j int) bool {
			return feed[i].DistanceKm < feed[j].DistanceKm
		})
	}
	return feed, nil
}

// Menus returns a restaurant's menu items.
func (s *DefaultFeedService) Menus(ctx context.Context, restaurantID int64) ([]models.Menu, error) {
	return s.Backend.ListMenus(ctx, restaurantID)
}

// listAll fetches the raw hotel list, serving from the feed cache when warm.
// Cache failures degrade to a direct backend fetch.
func (s *DefaultFeedService) listAll(ctx context.Context) ([]models.Restaurant, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, utils.FeedCacheKey).Result(); err == nil {
			var restaurants []models.Restaurant
			if err := json.Unmarshal([]byte(cached), &restaurants); err != nil {
				s.Logger.Warn("discarding malformed feed cache entry", zap.Error(err))
			} else {
				return restaurants, nil
			}
		}
	}

	restaurants, err := s.Backend.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(restaurants); err == nil {
			if err := s.Cache.Set(ctx, utils.FeedCacheKey, data, utils.FeedCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache restaurant feed", zap.Error(err))
			}
		}
	}
	return restaurants, nil
}
