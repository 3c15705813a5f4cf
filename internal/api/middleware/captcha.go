package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/captcha"
)

const (
	// ContextKeyIsHumanVerified marks clients that passed a Turnstile
	// challenge on this request.
	ContextKeyIsHumanVerified = "isHumanVerified"
)

// CaptchaMiddleware verifies the X-Captcha-Token header when present and
// records the result for the rate limiter. Verification errors are treated
// as not-human rather than failing the request.
func CaptchaMiddleware(verifier captcha.ITurnstileVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		isHuman := false

		if token := c.GetHeader("X-Captcha-Token"); token != "" {
			verified, err := verifier.Verify(c.Request.Context(), token, c.ClientIP())
			if err != nil {
				logger.Warn("captcha verification error", zap.Error(err))
			} else {
				isHuman = verified
			}
		}

		c.Set(ContextKeyIsHumanVerified, isHuman)
		c.Next()
	}
}
