package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablenow/handlers"
	"tablenow/middleware"
	"tablenow/models"
	"tablenow/navigation"
	"tablenow/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLayoutRouter(t *testing.T) (*gin.Engine, *storage.MemoryDeviceStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	devices := storage.NewMemoryDeviceStore()
	h := &handlers.LayoutHandler{
		Guard: &navigation.Guard{Devices: devices, Logger: zap.NewNop()},
	}

	router := gin.New()
	router.Use(middleware.DeviceMiddleware())
	router.GET("/api/layout", h.ResolveHandler)
	return router, devices
}

func layoutResponse(t *testing.T, router *gin.Engine, deviceID, query string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/layout"+query, nil)
	if deviceID != "" {
		req.Header.Set(middleware.DeviceIDHeader, deviceID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body, w
}

func TestLayoutResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous protected load routes to login", func(t *testing.T) {
		router, _ := newLayoutRouter(t)
		body, _ := layoutResponse(t, router, "device-1", "?authRequired=true")
		require.Equal(t, models.RouteLogin, body["destination"])
	})

	t.Run("authenticated public load routes to profile", func(t *testing.T) {
		router, devices := newLayoutRouter(t)
		require.NoError(t, devices.Set(ctx, "device-1", storage.KeyWebToken, "tok"))

		body, _ := layoutResponse(t, router, "device-1", "")
		require.Equal(t, models.RouteProfile, body["destination"])
	})

	t.Run("marker resumes the saved page once", func(t *testing.T) {
		router, devices := newLayoutRouter(t)
		require.NoError(t, devices.Set(ctx, "device-1", storage.KeyWebToken, "tok"))
		require.NoError(t, storage.SaveRedirectMarker(ctx, devices, "device-1", models.RedirectState{
			FromReservation: true,
			Location:        models.RouteLocation{Pathname: "/reservation/3"},
		}))

		body, _ := layoutResponse(t, router, "device-1", "?authRequired=true")
		require.Equal(t, "/reservation/3", body["destination"])

		body, _ = layoutResponse(t, router, "device-1", "?authRequired=true")
		require.Empty(t, body["destination"])
	})

	t.Run("devices without an ID are issued one", func(t *testing.T) {
		router, _ := newLayoutRouter(t)
		_, w := layoutResponse(t, router, "", "")
		require.NotEmpty(t, w.Header().Get(middleware.DeviceIDHeader))
	})

	t.Run("guest flag defaults to true", func(t *testing.T) {
		router, _ := newLayoutRouter(t)
		body, _ := layoutResponse(t, router, "device-1", "")
		require.Equal(t, true, body["guest"])
	})
}
