package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "drecli/internal/errors"
)

type deriveBody struct {
	Category string   `json:"category" validate:"required,identifier"`
	Periods  []string `json:"periods"`
	Columns  []string `json:"columns" validate:"omitempty,unique,dive,identifier"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidationMiddleware(nil, nil)

	tests := []struct {
		name      string
		body      deriveBody
		wantField string
		wantMsg   string
	}{
		{"valid", deriveBody{Category: "ebitda", Periods: []string{"Jan", "Fev"}}, "", ""},
		{"empty periods allowed", deriveBody{Category: "ebitda"}, "", ""},
		{"missing category", deriveBody{}, "category", "category is required"},
		{"raw label", deriveBody{Category: "Receita Bruta"}, "category", "identifier"},
		{"unknown and repeated months pass", deriveBody{Category: "ebitda", Periods: []string{"Jan", "Foo", "Jan"}}, "", ""},
		{"duplicate column", deriveBody{Category: "ebitda", Columns: []string{"ebitda", "ebitda"}}, "columns", "duplicates"},
		{"raw column label", deriveBody{Category: "ebitda", Columns: []string{"Ebitda Total"}}, "columns[0]", `"Ebitda Total"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.body)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			details := apiErr.Details.(apierrors.FieldErrorList)
			require.NotEmpty(t, details.Errors)
			assert.Equal(t, tt.wantField, details.Errors[0].Field)
			assert.Contains(t, details.Errors[0].Message, tt.wantMsg)
		})
	}

	t.Run("non struct", func(t *testing.T) {
		err := v.ValidateStruct(42)
		require.Error(t, err)
		var apiErr *apierrors.APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestValidateRequest(t *testing.T) {
	v := NewValidationMiddleware(nil, nil)

	var got string
	h := v.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid json passes and body is restored", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"category":"ebitda"}`)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, `{"category":"ebitda"}`, got)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"category":`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_JSON")
	})

	t.Run("too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		big := `{"x":"` + strings.Repeat("a", DefaultMaxBodySize) + `"}`
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("get skipped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
