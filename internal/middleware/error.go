package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
)

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// NewErrorHandler maps domain errors onto HTTP statuses. Anything it does
// not recognise becomes a 500 whose detail only reaches the log.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		traceID := uuid.New().String()
		status, resp := classify(err)
		resp.TraceID = traceID

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		case status != fiber.StatusNotFound:
			log.Debug("request rejected",
				zap.String("trace_id", traceID),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		return c.Status(status).JSON(resp)
	}
}

func classify(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Fields:  verr.Fields,
		}
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, ErrorResponse{Code: codeForStatus(ferr.Code), Message: ferr.Message}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, ErrorResponse{Code: "FORBIDDEN", Message: "Not authorized to perform this action"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid email or password"}
	case errors.Is(err, domain.ErrAccountDeactivated):
		return fiber.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "Account is deactivated"}
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or expired token"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailExists):
		return fiber.StatusConflict, ErrorResponse{Code: "CONFLICT", Message: "Email already registered"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrSenderNotConfigured):
		return fiber.StatusBadGateway, ErrorResponse{Code: "EXTERNAL_SERVICE_ERROR", Message: "Sender email address is not configured"}
	case errors.Is(err, domain.ErrObjectStorageMissing):
		return fiber.StatusBadGateway, ErrorResponse{Code: "EXTERNAL_SERVICE_ERROR", Message: "Object storage is not configured"}
	case errors.Is(err, domain.ErrExternalService):
		return fiber.StatusBadGateway, ErrorResponse{Code: "EXTERNAL_SERVICE_ERROR", Message: "External service request failed"}
	}

	return fiber.StatusInternalServerError, ErrorResponse{Code: "INTERNAL_ERROR", Message: "Internal server error"}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusBadGateway:
		return "EXTERNAL_SERVICE_ERROR"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
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
