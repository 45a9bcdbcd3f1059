// File: tablenow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablenow/backend"
	"tablenow/config"
	"tablenow/handlers"
	"tablenow/navigation"
	"tablenow/routes"
	"tablenow/services/auth"
	"tablenow/services/booking"
	"tablenow/services/feed"
	"tablenow/services/media"
	"tablenow/services/session"
	"tablenow/services/user"
	"tablenow/storage"
	"tablenow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitDeviceStore()
	utils.InitAuthCache()
	utils.InitFeedCache()
	utils.FirebaseInit()

	var mediaService media.MediaService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Sugar().Warnf("main: cloudinary not configured, image uploads disabled: %v", err)
	} else {
		mediaService = media.NewMediaService(cld)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Stores and clients.
	deviceStore := storage.NewRedisDeviceStore(utils.GetDeviceClient())
	sessionStore := session.NewStore(deviceStore, logger)
	backendClient := backend.NewClient(config.AppConfig.BackendBaseURL, config.AppConfig.BackendAPIKey)
	providerClient := auth.NewProviderClient(config.AppConfig.FirebaseWebAPIKey)

	// Services.
	bookingService := booking.NewBookingService(backendClient, sessionStore, deviceStore, logger)

	var verifier auth.TokenVerifier
	if utils.FirebaseAuthClient != nil {
		verifier = utils.FirebaseAuthClient
	}
	authService := &auth.DefaultAuthService{
		Provider: providerClient,
		Backend:  backendClient,
		Store:    sessionStore,
		Merger:   bookingService,
		Verifier: verifier,
		Logger:   logger,
	}

	userService := user.NewUserService(backendClient, sessionStore, deviceStore, mediaService, logger)
	feedService := feed.NewFeedService(backendClient, utils.GetFeedCacheClient(), logger)
	guard := &navigation.Guard{Devices: deviceStore, Logger: logger}

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(authService, userService, feedService, bookingService, guard)
	routes.RegisterRoutes(router, handlerBundle, sessionStore, authService, utils.GetAuthCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
