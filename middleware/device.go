package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeviceIDHeader carries the client's stable device identifier. Every
// device-scoped key derives from it.
const DeviceIDHeader = "X-Device-ID"

func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 && ips[0] != "" {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

// DeviceMiddleware resolves the caller's device ID. A client without one is
// issued a fresh ID, echoed back in the response header so the client can
// persist it.
func DeviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceIDHeader)
		if deviceID == "" {
			deviceID = uuid.New().String()
		}
		c.Header(DeviceIDHeader, deviceID)
		c.Set("deviceID", deviceID)
		c.Next()
	}
}

// DeviceID returns the device ID resolved by DeviceMiddleware.
func DeviceID(c *gin.Context) string {
	return c.GetString("deviceID")
}
