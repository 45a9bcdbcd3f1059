package middleware

import (
	"net/http"

	"tablenow/services/auth"
	"tablenow/services/session"
	"tablenow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionAuthMiddleware guards routes that require an authenticated session.
// The device's session token is resolved from the store; a hash of the last
// verified token is cached in Redis so the backend is only consulted on a
// cold or changed token.
func SessionAuthMiddleware(store *session.Store, authSvc auth.AuthService, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		deviceID := DeviceID(c)
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx := c.Request.Context()
		token, ok := store.Token(ctx, deviceID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(token)
		cacheKey := utils.AuthCachePrefix + deviceID

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
					c.Next()
					return
				}
				// A different token is live for this device; fall through to
				// a fresh verification.
			} else if err != redis.Nil {
				logger.Warn("auth cache lookup failed; verifying against backend",
					zap.Error(err))
			}
		}

		if _, err := authSvc.CurrentUser(ctx, deviceID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache verified session token", zap.Error(err))
			}
		}
		c.Next()
	}
}
