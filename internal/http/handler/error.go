package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"applyapi/internal/apperr"
	"applyapi/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// requestError is a malformed-request failure detected by a handler before reaching the service.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// kindStatus maps domain error kinds to HTTP status and public code.
var kindStatus = map[apperr.Kind]struct {
	status int
	code   string
}{
	apperr.KindValidation:        {fiber.StatusBadRequest, "VALIDATION_ERROR"},
	apperr.KindMissingAttachment: {fiber.StatusBadRequest, "RESUME_REQUIRED"},
	apperr.KindNotEligible:       {fiber.StatusBadRequest, "JOB_NOT_ELIGIBLE"},
	apperr.KindUnauthorized:      {fiber.StatusUnauthorized, "UNAUTHORIZED"},
	apperr.KindForbidden:         {fiber.StatusForbidden, "FORBIDDEN"},
	apperr.KindNotFound:          {fiber.StatusNotFound, "NOT_FOUND"},
	apperr.KindDuplicate:         {fiber.StatusConflict, "DUPLICATE_APPLICATION"},
	apperr.KindRateLimited:       {fiber.StatusTooManyRequests, "RATE_LIMITED"},
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Domain errors keep their safe message; anything else is logged and reported as INTERNAL_ERROR.
func ErrorHandler(logger logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			return writeError(c, fiber.StatusBadRequest, reqErr.code, reqErr.message)
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if m, ok := kindStatus[appErr.Kind]; ok {
				return writeError(c, m.status, m.code, appErr.Message)
			}
			return internalError(c, logger, err)
		}

		var fiberErr *fiber.Error
		if !errors.As(err, &fiberErr) {
			return internalError(c, logger, err)
		}

		switch fiberErr.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fiberErr.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, fiberErr.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fiberErr.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fiberErr.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return internalError(c, logger, err)
		}
	}
}

func internalError(c *fiber.Ctx, logger logrus.FieldLogger, err error) error {
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": requestIDFromCtx(c),
			"method":     c.Method(),
			"path":       c.Path(),
		}).Error("request failed")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
