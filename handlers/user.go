package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"tablenow/middleware"
	"tablenow/models"
	"tablenow/services/user"
	"tablenow/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the authenticated account surface.
type UserHandler struct {
	Users    user.UserService
	Inflight *utils.InflightRegistry
}

// UpdateProfileHandler applies a partial profile update. Rapid repeats are
// superseded: only the newest request's write lands.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	deviceID := middleware.DeviceID(c)
	ctx, done := h.Inflight.Begin(c.Request.Context(), "profile-update:"+deviceID)
	defer done()

	profile, err := h.Users.UpdateProfile(ctx, deviceID, patch)
	if err != nil {
		if utils.Superseded(ctx) {
			c.JSON(http.StatusConflict, gin.H{"error": "Superseded by a newer request"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UploadProfileImageHandler accepts a multipart image and applies it as the
// profile picture.
func (h *UserHandler) UploadProfileImageHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	deviceID := middleware.DeviceID(c)
	ctx, done := h.Inflight.Begin(c.Request.Context(), "profile-update:"+deviceID)
	defer done()

	profile, err := h.Users.UploadProfileImage(ctx, deviceID, tempFilePath)
	if err != nil {
		if utils.Superseded(ctx) {
			c.JSON(http.StatusConflict, gin.H{"error": "Superseded by a newer request"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// DeleteAccountHandler removes the account and wipes device state.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	if err := h.Users.DeleteAccount(c.Request.Context(), middleware.DeviceID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// BookingHistoryHandler returns the user's booking history.
func (h *UserHandler) BookingHistoryHandler(c *gin.Context) {
	bookings, err := h.Users.BookingHistory(c.Request.Context(), middleware.DeviceID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler clears one booking from the history.
func (h *UserHandler) CancelBookingHandler(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	message, err := h.Users.CancelBooking(c.Request.Context(), middleware.DeviceID(c), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// CancelAllBookingsHandler clears the entire booking history.
func (h *UserHandler) CancelAllBookingsHandler(c *gin.Context) {
	if err := h.Users.CancelAllBookings(c.Request.Context(), middleware.DeviceID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All bookings deleted"})
}

// RateBookingHandler submits a review for a past booking.
func (h *UserHandler) RateBookingHandler(c *gin.Context) {
	var rating models.Rating
	if err := c.ShouldBindJSON(&rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Users.RateBooking(c.Request.Context(), middleware.DeviceID(c), rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted"})
}

// FavoritesHandler returns the user's favorited restaurants.
func (h *UserHandler) FavoritesHandler(c *gin.Context) {
	favorites, err := h.Users.Favorites(c.Request.Context(), middleware.DeviceID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
