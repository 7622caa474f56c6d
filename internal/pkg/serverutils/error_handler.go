package serverutils

import (
	"errors"

	"scent-advisor-be/internal/constant"
	"scent-advisor-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned further down the chain
// as a BaseResponse. Unknown errors never leak their text to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(ValidationErrorResponse(fiber.StatusBadRequest, constant.InvalidRequestMessage, validationErr.Fields))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	log.Error(constant.LogModuleHTTP, "Unhandled request error", map[string]interface{}{
		"error":  err.Error(),
		"method": ctx.Method(),
		"path":   ctx.Path(),
	})
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, constant.AdvisorFailureMessage))
}
