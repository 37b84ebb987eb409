package api

import (
	"context"  // Context for Redis operations
	"errors"   // Matching domain errors
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"time"     // Cache TTL

	"earning_admin/internal/ledger" // Ledger errors
	"earning_admin/internal/store"  // Storage errors
	"earning_admin/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// viewCacheTTL bounds how stale a cached admin view can be
const viewCacheTTL = 60 * time.Second

// pathID parses the :id path parameter, answering 400 when it is not an integer
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// confirmed requires ?confirm=true on irreversible requests
func confirmed(c *gin.Context) bool {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation required: add ?confirm=true"})
		return false
	}
	return true
}

// invalidateViews drops every cached admin view after a mutation
func invalidateViews(ctx context.Context, rdb *redis.Client) {
	if err := utils.DeleteCachePattern(ctx, rdb, utils.AdminCachePrefix+"*"); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate admin cache")
	}
}

// respondError maps ledger and storage errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found!"})
	case errors.Is(err, ledger.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found!"})
	case errors.Is(err, ledger.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"error": "Request is no longer pending"})
	case errors.Is(err, store.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Data was changed by another session, please retry"})
	case errors.Is(err, ledger.ErrInvalidDocument), errors.Is(err, ledger.ErrResetPhrase):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// cachedView serves a read view from Redis, loading and caching it on a miss
func cachedView[T any](c *gin.Context, rdb *redis.Client, key, field string, load func(ctx context.Context) (T, error)) {
	ctx := c.Request.Context()
	cacheKey := utils.AdminCachePrefix + key // Cache key of the view
	var cached T
	// If cached data found, return it
	if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
		c.JSON(http.StatusOK, gin.H{field: cached, "cached": true})
		return
	}
	value, err := load(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	// Cache the view for future requests
	_ = utils.SetCache(ctx, rdb, cacheKey, value, viewCacheTTL)
	c.JSON(http.StatusOK, gin.H{field: value, "cached": false})
}
