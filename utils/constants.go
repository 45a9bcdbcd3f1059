// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis session-token cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for session-token cache entries.
const AuthCacheTTL = 10 * time.Minute

// FeedCacheKey is the Redis key holding the assembled restaurant feed.
const FeedCacheKey = "feed:restaurants"

// FeedCacheTTL is the time-to-live for the cached restaurant feed.
const FeedCacheTTL = 5 * time.Minute
