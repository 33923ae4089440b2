package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp
}

func TestSuccess(t *testing.T) {
	rr := httptest.NewRecorder()

	Success(rr, http.StatusCreated, map[string]string{"description": "<p>Dune</p>"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<p>Dune</p>")
	assert.True(t, decode(t, rr).Success)
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()

	NoContent(rr)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestError(t *testing.T) {

	t.Run("App Error With Detail", func(t *testing.T) {
		rr := httptest.NewRecorder()

		Error(rr, appErrors.OutOfStockError("Insufficient stock").WithDetail("Dune: 1 left"))

		assert.Equal(t, http.StatusConflict, rr.Code)
		resp := decode(t, rr)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeOutOfStock, resp.Error.Code)
		assert.Equal(t, []string{"Dune: 1 left"}, resp.Error.Details)
	})

	t.Run("Wrapped App Error", func(t *testing.T) {
		rr := httptest.NewRecorder()

		Error(rr, errors.Join(errors.New("ctx"), appErrors.NotFoundError("Book not found")))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Plain Error Is Hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()

		Error(rr, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		resp := decode(t, rr)
		assert.Equal(t, appErrors.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, rr.Body.String(), "pq:")
	})
}

func TestValidationError(t *testing.T) {
	type input struct {
		Title  string `validate:"required"`
		Name   string `validate:"max=3"`
		Rating int    `validate:"min=1"`
	}

	err := validator.New().Struct(input{Name: "long", Rating: 0})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	rr := httptest.NewRecorder()
	ValidationError(rr, errs)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decode(t, rr)
	assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, []string{
		"Field Title is required",
		"Field Name must be at most 3 characters",
		"Field Rating must be at least 1",
	}, resp.Error.Details)
}
