package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter returns middleware that limits requests per client IP using
// a sliding window backed by an in-memory store.
// rateFormatted: "3-M" = 3/minute, "100-H" = 100/hour, "10-S" = 10/second.
// An empty rate disables limiting.
func NewRateLimiter(rateFormatted string) (gin.HandlerFunc, error) {
	if rateFormatted == "" {
		return func(ctx *gin.Context) { ctx.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateFormatted)

	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)

	return func(ctx *gin.Context) {
		key := ctx.ClientIP()

		limiterCtx, err := instance.Get(ctx.Request.Context(), key)

		if err != nil {
			// The limiter must never take down the request path.
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Limit", strconv.FormatInt(limiterCtx.Limit, 10))
		ctx.Header("X-RateLimit-Remaining", strconv.FormatInt(limiterCtx.Remaining, 10))
		ctx.Header("X-RateLimit-Reset", strconv.FormatInt(limiterCtx.Reset, 10))

		if limiterCtx.Reached {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded, try again later"})
			return
		}

		ctx.Next()
	}, nil
}
