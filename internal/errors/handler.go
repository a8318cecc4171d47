package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"drecli/internal/dre"
)

// ErrorHandler writes every failure as an RFC 7807 problem and logs it once.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError maps err to a problem and writes it. Server-side failures
// log at error level, client mistakes at warn.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.Any("error", err),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	h.write(w, r, problem)
}

// ErrorToProblem picks the problem for err. Context cancellation wins over
// everything else, then engine errors, then request and application errors.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	path := r.URL.Path

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return kindTimeout.problem("The request took too long to process and was cancelled", path)
	}

	var missing *dre.AccountNotFoundError
	if errors.As(err, &missing) {
		problem := kindAccountNotFound.problem(missing.Error(), path).
			WithExtension("account", missing.Account)
		if missing.Category != "" {
			problem.WithExtension("category", missing.Category)
		}
		return problem
	}

	if errors.Is(err, dre.ErrCategoryNotFound) {
		return kindCategoryNotFound.problem(err.Error(), path)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		problem := NewProblemDetails(apiErr.StatusCode, apiErr.Code.problemType(),
			http.StatusText(apiErr.StatusCode), apiErr.Message, path).
			WithExtension("error_code", string(apiErr.Code))
		if apiErr.Details != nil {
			problem.WithExtension("details", apiErr.Details)
		}
		return problem
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		return kindValidation.problem("Request validation failed", path).
			WithExtension("errors", FieldErrors(invalid))
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return kindPayloadTooLarge.problem(fmt.Sprintf("The request body exceeds %d bytes", tooLarge.Limit), path)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErrorProblem(appErr, path)
	}

	return kindInternal.problem("An unexpected error occurred while processing your request", path)
}

// FieldErrors flattens validator errors into the API representation.
func FieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out = append(out, FieldError{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s'", rule)})
	}
	return out
}

var appErrorKinds = map[ErrorType]problemKind{
	ErrTypeValidation: kindValidation,
	ErrTypeNotFound:   kindNotFound,
	ErrTypeParsing:    kindStatementInvalid,
	ErrTypeConfig:     kindConfiguration,
}

func appErrorProblem(appErr *AppError, path string) *ProblemDetails {
	kind, ok := appErrorKinds[appErr.Type]
	if !ok {
		kind = kindInternal
	}

	problem := kind.problem(appErr.Message, path).
		WithExtension("error_type", string(appErr.Type))
	keys := make([]string, 0, len(appErr.Attrs))
	for k := range appErr.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		problem.WithExtension(k, appErr.Attrs[k])
	}
	return problem
}

// HandlePanic answers a recovered panic with a bare 500.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := kindInternal.problem("An unexpected error occurred", r.URL.Path)
	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprint(recovered))
	}
	h.write(w, r, problem)
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, kindNotFound.problem("The requested resource was not found", r.URL.Path))
}

func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, kindMethodNotAllowed.problem(
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method), r.URL.Path))
}

// RecoveryMiddleware turns panics into problem responses. http.ErrAbortHandler
// is re-raised so net/http can abort the connection.
func (h *ErrorHandler) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.HandlePanic(w, r, rec)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// write stamps the request id (and the stack, in debug mode) and renders.
func (h *ErrorHandler) write(w http.ResponseWriter, r *http.Request, problem *ProblemDetails) {
	problem.WithExtension("trace_id", middleware.GetReqID(r.Context()))
	if h.includeStack {
		problem.WithExtension("stack", stackTrace())
	}
	_ = render.Render(w, r, problem)
}

func stackTrace() string {
	buf := make([]byte, 8<<10)
	return string(buf[:runtime.Stack(buf, false)])
}
