package handlers

import (
	"net/http"

	"tablenow/middleware"
	"tablenow/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the signup/login/logout surface.
type AuthHandler struct {
	Auth auth.AuthService
}

// SignupHandler handles user registration.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req auth.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Auth.RegisterUser(c.Request.Context(), middleware.DeviceID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// LoginHandler handles user login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Auth.AuthenticateUser(c.Request.Context(), middleware.DeviceID(c), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutHandler tears down the device's session. Idempotent.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.DeviceID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SessionHandler returns the profile behind the device's session token.
func (h *AuthHandler) SessionHandler(c *gin.Context) {
	profile, err := h.Auth.CurrentUser(c.Request.Context(), middleware.DeviceID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UpdatePasswordHandler changes the provider password for the current
// session.
func (h *AuthHandler) UpdatePasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid password update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Auth.UpdatePassword(c.Request.Context(), middleware.DeviceID(c), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
