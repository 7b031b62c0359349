// Package middleware adapts a ratelimit.Limiter to the Gin HTTP framework.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	ratelimit "github.com/nanamanek/ratelimit"
)

// RateLimit returns a Gin handler that admits requests through limiter,
// keyed by keyFunc, before calling the next handler in the chain. It sets
// X-RateLimit-* headers whenever the limiter returns a decision and responds 429 with a
// Retry-After header on denial, or 500 if the store itself failed.
func RateLimit(limiter *ratelimit.Limiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := keyFunc(ctx)
		res, err := limiter.Limit(ctx.Request.Context(), key)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "rate limiter unavailable"})
			return
		}

		ctx.Header("X-RateLimit-Limit", fmt.Sprint(res.Limit))
		ctx.Header("X-RateLimit-Remaining", fmt.Sprint(res.Remaining))
		ctx.Header("X-RateLimit-Reset", fmt.Sprint(res.Reset.Unix()))

		if !res.Success {
			ctx.Header("Retry-After", fmt.Sprintf("%.0f", res.RetryAfter.Seconds()))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests, try again later",
			})
			return
		}

		ctx.Next()
	}
}
