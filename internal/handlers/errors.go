package handlers

import (
	"errors"
	"net/http"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorHandler renders every error returned by a handler or middleware as the JSON error
// envelope. Underlying error text is only exposed when showDetails is set.
func ErrorHandler(showDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message, fields := classify(err)

		entry := log.WithError(err).WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": status,
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Debug("Request rejected")
		}

		resp := dto.ErrorResponse{
			Success: false,
			Message: message,
			Errors:  fields,
		}
		if showDetails && err.Error() != message {
			resp.Error = err.Error()
		}
		return c.Status(status).JSON(resp)
	}
}

func classify(err error) (int, string, map[string]string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message, nil
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation:
			return http.StatusBadRequest, appErr.Message, appErr.Fields
		case apperrors.KindNotFound:
			return http.StatusNotFound, appErr.Message, nil
		case apperrors.KindConflict:
			return http.StatusConflict, appErr.Message, nil
		case apperrors.KindUnauthorized:
			return http.StatusUnauthorized, appErr.Message, nil
		case apperrors.KindForbidden:
			return http.StatusForbidden, appErr.Message, nil
		case apperrors.KindIntegration:
			return http.StatusBadGateway, appErr.Message, nil
		}
	}

	if status, message, ok := translateConstraint(err); ok {
		return status, message, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "Resource not found", nil
	}
	if appErr != nil && appErr.Kind == apperrors.KindPersistence {
		return http.StatusInternalServerError, appErr.Message, nil
	}
	return http.StatusInternalServerError, "Internal server error", nil
}

// translateConstraint maps database constraint violations to client errors. gorm
// translates the common ones itself; raw pgconn errors cover the rest.
func translateConstraint(err error) (int, string, bool) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "Resource already exists", true
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "Referenced resource does not exist", true
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return http.StatusBadRequest, "Value violates a constraint", true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return 0, "", false
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return http.StatusConflict, "Resource already exists", true
	case pgForeignKeyViolation:
		return http.StatusBadRequest, "Referenced resource does not exist", true
	case pgNotNullViolation:
		return http.StatusBadRequest, "Missing required value", true
	case pgCheckViolation:
		return http.StatusBadRequest, "Value violates a constraint", true
	}
	return 0, "", false
}
