package handlers

import (
	"net/http"
	"strconv"

	"tablenow/services/feed"

	"github.com/gin-gonic/gin"
)

// FeedHandler exposes the public restaurant feed.
type FeedHandler struct {
	Feed feed.FeedService
}

// RestaurantsHandler returns the bookable restaurant list. With lat and lng
// query parameters the list is distance-ranked from that origin.
func (h *FeedHandler) RestaurantsHandler(c *gin.Context) {
	var origin *feed.Origin
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		origin = &feed.Origin{Latitude: lat, Longitude: lng}
	}

	restaurants, err := h.Feed.Restaurants(c.Request.Context(), origin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// MenusHandler returns a restaurant's menu items.
func (h *FeedHandler) MenusHandler(c *gin.Context) {
	restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	menus, err := h.Feed.Menus(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}
