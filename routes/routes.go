package routes

import (
	"net/http"
	"time"

	"tablenow/handlers"
	"tablenow/middleware"
	"tablenow/services/auth"
	"tablenow/services/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RegisterAuthRoutes registers the signup/login surface.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authRequired gin.HandlerFunc) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
		api.GET("/session", hb.Auth.SessionHandler)

		api.PUT("/password", authRequired, hb.Auth.UpdatePasswordHandler)
	}
}

// RegisterLayoutRoute registers the load-time routing endpoint.
func RegisterLayoutRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/layout", hb.Layout.ResolveHandler)
}

// RegisterFeedRoutes registers the public restaurant feed.
func RegisterFeedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/restaurants")
	{
		api.GET("", hb.Feed.RestaurantsHandler)
		api.GET("/:id/menus", hb.Feed.MenusHandler)
	}
}

// RegisterReservationRoutes registers the checkout flow. Guest checkout is
// part of the flow, so these routes carry no auth requirement.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservation")
	{
		api.POST("", hb.Reservations.StartHandler)
		api.GET("", hb.Reservations.CurrentHandler)
		api.POST("/menus/:menuID/toggle", hb.Reservations.ToggleMenuHandler)
		api.PUT("/menus/:menuID/quantity", hb.Reservations.QuantityHandler)
		api.DELETE("/menus/:menuID", hb.Reservations.RemoveMenuHandler)
		api.POST("/confirm", hb.Reservations.ConfirmHandler)
		api.POST("/login-now", hb.Reservations.LoginNowHandler)
	}
}

// RegisterAccountRoutes registers the authenticated account surface.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authRequired gin.HandlerFunc) {
	api := r.Group("/api/account")
	api.Use(authRequired)
	{
		api.PATCH("/profile", hb.Users.UpdateProfileHandler)
		api.POST("/profile/image", hb.Users.UploadProfileImageHandler)
		api.DELETE("", hb.Users.DeleteAccountHandler)

		api.GET("/bookings", hb.Users.BookingHistoryHandler)
		api.DELETE("/bookings/:id", hb.Users.CancelBookingHandler)
		api.DELETE("/bookings", hb.Users.CancelAllBookingsHandler)
		api.POST("/ratings", hb.Users.RateBookingHandler)

		api.GET("/favorites", hb.Users.FavoritesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TableNow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store *session.Store, authSvc auth.AuthService, authCache *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.DeviceIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.DeviceIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.DeviceMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	authRequired := middleware.SessionAuthMiddleware(store, authSvc, authCache)

	RegisterAuthRoutes(r, hb, authRequired)
	RegisterLayoutRoute(r, hb)
	RegisterFeedRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterAccountRoutes(r, hb, authRequired)
	RegisterHealthRoute(r)
}
