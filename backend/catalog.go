package backend

import (
	"context"
	"fmt"
	"net/http"

	"tablenow/models"
)

// ListRestaurants returns the public restaurant ("hotel") feed.
func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := c.do(ctx, http.MethodGet, "hotels", nil, "", nil, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ListMenus returns the menu items offered by a restaurant.
func (c *Client) ListMenus(ctx context.Context, restaurantID int64) ([]models.Menu, error) {
	var menus []models.Menu
	path := fmt.Sprintf("hotel-menus/%d", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// ListFavorites returns the server-owned favorites list. Read-only within
// the client.
func (c *Client) ListFavorites(ctx context.Context, token string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := c.do(ctx, http.MethodGet, "favorites", nil, token, nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
