package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	err := NewStorageError("open workbook", fs.ErrNotExist)

	assert.Equal(t, "[STORAGE] open workbook: file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, IsType(err, ErrTypeStorage))
	assert.True(t, IsType(fmt.Errorf("load: %w", err), ErrTypeStorage))
	assert.False(t, IsType(err, ErrTypeParsing))
	assert.False(t, IsType(errors.New("plain"), ErrTypeStorage))

	assert.Equal(t, "[NOT_FOUND] sheet DRE_dummy not found", NewNotFoundError("sheet DRE_dummy").Error())

	cell := (&AppError{Type: ErrTypeParsing, Message: "bad cell"}).With("cell", "B2")
	assert.Equal(t, "B2", cell.Attrs["cell"])
}

func TestAppErrorLogValue(t *testing.T) {
	err := NewParsingError("invalid number", errors.New("strconv: bad")).
		With("sheet", "DRE_dummy").
		With("cell", "C4")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Error("load failed", slog.Any("error", err))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	group, ok := entry["error"].(map[string]any)
	require.True(t, ok, "error is logged as a group")
	assert.Equal(t, "PARSING", group["type"])
	assert.Equal(t, "invalid number", group["message"])
	assert.Equal(t, "strconv: bad", group["cause"])
	assert.Equal(t, "C4", group["cell"])
	assert.Equal(t, "DRE_dummy", group["sheet"])
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want ErrorType
	}{
		{NewParsingError("p", nil), ErrTypeParsing},
		{NewStorageError("s", nil), ErrTypeStorage},
		{NewAppValidationError("v"), ErrTypeValidation},
		{NewNotFoundError("n"), ErrTypeNotFound},
		{NewConfigError("c", nil), ErrTypeConfig},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
			assert.Empty(t, tt.err.Attrs)
		})
	}
}

func TestAPIError(t *testing.T) {
	invalid := InvalidRequestWithError(errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
	assert.Equal(t, CodeInvalidRequest, invalid.Code)
	assert.Equal(t, "unexpected EOF", invalid.Details)
	assert.Equal(t, "Invalid request format", invalid.Error())

	multi := NewValidationErrors([]FieldError{{Field: "periods"}, {Field: "category"}})
	assert.Equal(t, CodeValidationFailed, multi.Code)
	assert.Len(t, multi.Details.(FieldErrorList).Errors, 2)

	raw, err := json.Marshal(ErrRateLimitExceeded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status_code":429,"error_code":"RATE_LIMIT_EXCEEDED","message":"Rate limit exceeded"}`, string(raw))
}

func TestCodeProblemType(t *testing.T) {
	assert.Equal(t, TypeValidation, CodeInvalidJSON.problemType())
	assert.Equal(t, TypeValidation, CodeMissingContentType.problemType())
	assert.Equal(t, TypeUnsupportedMedia, CodeUnsupportedMedia.problemType())
	assert.Equal(t, TypeNotFound, CodeNotFound.problemType())
	assert.Equal(t, TypeRateLimit, CodeRateLimited.problemType())
	assert.Equal(t, TypeInternal, Code("SOMETHING_ELSE").problemType())
}

func TestProblemDetailsJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusNotFound, TypeCategoryNotFound, "Category Not Found", "", "/api/v1/categories/x").
		WithExtension("category", "x").
		WithExtension("type", "ignored")

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, TypeCategoryNotFound, body["type"])
	assert.Equal(t, "x", body["category"])
	assert.Equal(t, float64(404), body["status"])
	assert.NotContains(t, body, "detail")

	empty := &ProblemDetails{Status: 500}
	empty.WithExtension("k", 1)
	assert.Equal(t, 1, empty.Extensions["k"])
}
