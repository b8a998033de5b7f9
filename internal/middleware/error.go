package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lost-found/internal/domain"
	"lost-found/internal/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// domainErrors maps service sentinels onto HTTP errors.
var domainErrors = []struct {
	err    error
	status int
}{
	{domain.ErrReportNotFound, fiber.StatusNotFound},
	{domain.ErrNotificationNotFound, fiber.StatusNotFound},
	{domain.ErrInvalidReportType, fiber.StatusUnprocessableEntity},
	{domain.ErrMissingReportFields, fiber.StatusUnprocessableEntity},
	{domain.ErrInvalidStatus, fiber.StatusUnprocessableEntity},
	{domain.ErrInvalidStatusTransition, fiber.StatusConflict},
	{domain.ErrNotReportOwner, fiber.StatusForbidden},
}

func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}

	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			for _, de := range domainErrors {
				if errors.Is(err, de.err) {
					code = de.status
					message = err.Error()
					break
				}
			}
		}

		traceID := uuid.New().String()[:8]

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed",
				"trace_id", traceID,
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode(code),
			Message: message,
			TraceID: traceID,
		})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	}
	return "INTERNAL_ERROR"
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func UnprocessableEntity(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, message)
}
