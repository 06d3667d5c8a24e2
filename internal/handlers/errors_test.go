package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmahub/internal/apperrors"
	"pharmahub/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.Validation("bad"), http.StatusBadRequest},
		{"not found", apperrors.NotFound("missing"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("stock"), http.StatusConflict},
		{"unauthorized", apperrors.Unauthorized("token"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("admin"), http.StatusForbidden},
		{"integration", apperrors.Integration(errors.New("timeout"), "gateway"), http.StatusBadGateway},
		{"persistence", apperrors.Persistence(errors.New("disk"), "db"), http.StatusInternalServerError},
		{"duplicate key", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"foreign key", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), http.StatusBadRequest},
		{"pg unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest},
		{"pg not null", apperrors.Persistence(&pgconn.PgError{Code: "23502"}, "insert"), http.StatusBadRequest},
		{"pg check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"pg other", &pgconn.PgError{Code: "40001"}, http.StatusInternalServerError},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"fiber", fiber.NewError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, _ := classify(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestErrorHandler_Details(t *testing.T) {
	run := func(showDetails bool) dto.ErrorResponse {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(showDetails)})
		app.Get("/", func(c *fiber.Ctx) error {
			return apperrors.Persistence(errors.New("connection reset"), "Failed to create order")
		})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	dev := run(true)
	assert.False(t, dev.Success)
	assert.Equal(t, "Failed to create order", dev.Message)
	assert.Contains(t, dev.Error, "connection reset")

	prod := run(false)
	assert.Equal(t, "Failed to create order", prod.Message)
	assert.Empty(t, prod.Error)
}

func TestErrorHandler_FieldErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Post("/", func(c *fiber.Ctx) error {
		return apperrors.ValidationFields("Validation failed", map[string]string{"customerName": "customerName is required"})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "customerName is required", body.Errors["customerName"])
}
