package handlers

import (
	"net/http"
	"strconv"

	"tablenow/middleware"
	"tablenow/navigation"
	"tablenow/services/auth"
	"tablenow/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LayoutHandler resolves routing for page loads: the optional ?token=
// exchange followed by the login/redirect decision.
type LayoutHandler struct {
	Auth  auth.AuthService
	Guard *navigation.Guard
}

// ResolveHandler runs the load-time routing sequence. A token query
// parameter is exchanged for a session before the decision; an invalid one
// only logs, leaving the device unauthenticated for the decision.
func (h *LayoutHandler) ResolveHandler(c *gin.Context) {
	logger := getLogger(c)
	deviceID := middleware.DeviceID(c)
	ctx := c.Request.Context()

	if token := c.Query("token"); token != "" {
		if _, err := h.Auth.VerifyURLToken(ctx, deviceID, token); err != nil {
			logger.Warn("URL token exchange failed", zap.Error(err))
		}
	}

	authRequired, _ := strconv.ParseBool(c.Query("authRequired"))
	outcome := h.Guard.Resolve(ctx, deviceID, authRequired)

	c.JSON(http.StatusOK, gin.H{
		"destination": outcome.Destination,
		"state":       outcome.State,
		"guest":       storage.GuestState(ctx, h.Guard.Devices, deviceID),
	})
}
