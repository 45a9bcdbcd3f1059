package handlers

import (
	"net/http"
	"strconv"

	"tablenow/middleware"
	"tablenow/services/booking"
	"tablenow/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler drives the reservation checkout flow.
type ReservationHandler struct {
	Bookings booking.BookingService
	Inflight *utils.InflightRegistry
}

// StartHandler begins (or restarts) a reservation from deep-linked details.
func (h *ReservationHandler) StartHandler(c *gin.Context) {
	var details booking.ReservationDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.Bookings.StartReservation(c.Request.Context(), middleware.DeviceID(c), details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// CurrentHandler returns the reservation in progress.
func (h *ReservationHandler) CurrentHandler(c *gin.Context) {
	reservation, err := h.Bookings.Current(middleware.DeviceID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) menuID(c *gin.Context) (int64, bool) {
	menuID, err := strconv.ParseInt(c.Param("menuID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return 0, false
	}
	return menuID, true
}

// ToggleMenuHandler flips a menu item's cart membership.
func (h *ReservationHandler) ToggleMenuHandler(c *gin.Context) {
	menuID, ok := h.menuID(c)
	if !ok {
		return
	}
	reservation, err := h.Bookings.ToggleMenu(middleware.DeviceID(c), menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// QuantityHandler adjusts a cart entry's quantity.
func (h *ReservationHandler) QuantityHandler(c *gin.Context) {
	menuID, ok := h.menuID(c)
	if !ok {
		return
	}

	var req struct {
		Increment int `json:"increment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reservation, err := h.Bookings.AdjustQuantity(middleware.DeviceID(c), menuID, req.Increment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// RemoveMenuHandler deletes a cart entry.
func (h *ReservationHandler) RemoveMenuHandler(c *gin.Context) {
	menuID, ok := h.menuID(c)
	if !ok {
		return
	}
	reservation, err := h.Bookings.RemoveMenu(middleware.DeviceID(c), menuID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ConfirmHandler submits the reservation. Double-taps are superseded so at
// most one confirmation lands.
func (h *ReservationHandler) ConfirmHandler(c *gin.Context) {
	var input booking.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	deviceID := middleware.DeviceID(c)
	ctx, done := h.Inflight.Begin(c.Request.Context(), "reservation-confirm:"+deviceID)
	defer done()

	result, err := h.Bookings.Submit(ctx, deviceID, input)
	if err != nil {
		if utils.Superseded(ctx) {
			c.JSON(http.StatusConflict, gin.H{"error": "Superseded by a newer request"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LoginNowHandler records the redirect marker and routes the device to
// login.
func (h *ReservationHandler) LoginNowHandler(c *gin.Context) {
	destination, err := h.Bookings.LoginNow(c.Request.Context(), middleware.DeviceID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": destination})
}
