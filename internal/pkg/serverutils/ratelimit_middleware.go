package serverutils

import (
	"context"
	"strings"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/pkg/logger"
	"scent-advisor-be/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitMiddleware rejects callers over their quota with 429. When the
// limiter itself fails the request goes through.
func RateLimitMiddleware(limiter RateLimiter, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ClientKey(ctx)

		allowed, err := limiter.Allow(ctx.UserContext(), key)
		if err != nil {
			log.Warn(constant.LogModuleRateLimit, "Rate limiter unavailable, letting request through", map[string]interface{}{
				"error":  err.Error(),
				"client": key,
			})
			return ctx.Next()
		}

		if !allowed {
			metrics.RecordRateLimited()
			log.Info(constant.LogModuleRateLimit, "Request rate limited", map[string]interface{}{
				"client": key,
				"path":   ctx.Path(),
			})
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, constant.AdvisorRateLimitMessage))
		}

		return ctx.Next()
	}
}

// ClientKey identifies the caller: first X-Forwarded-For hop, else the socket address.
func ClientKey(ctx *fiber.Ctx) string {
	if fwd := ctx.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if ip := ctx.IP(); ip != "" {
		return ip
	}
	return "unknown"
}
