package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/cache"
)

type cachingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponse serves public GET responses from Redis. The cache key is the
// full request URI, so querystring variants cache independently. Only 200
// responses are stored.
func CacheResponse(rc *cache.ResponseCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, ok := rc.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &cachingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			if err := rc.Set(c.Request.Context(), key, writer.body.Bytes()); err != nil {
				logger.Debug("response cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

// InvalidateOnWrite drops all cached public responses after a successful
// mutating request. Admin writes are rare, so a full flush is simpler than
// per-collection tracking.
func InvalidateOnWrite(rc *cache.ResponseCache, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= 400 {
			return
		}
		if err := rc.Invalidate(c.Request.Context(), ""); err != nil {
			logger.Warn("response cache invalidation failed", zap.Error(err))
		}
	}
}
