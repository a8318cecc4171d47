package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "drecli/internal/errors"
	"drecli/internal/services"
	api "drecli/pkg/contracts/api/v1"
)

// ReportHandler serves derived DRE views with RFC 7807 errors
type ReportHandler struct {
	service      ReportServiceInterface
	validator    StructValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, validator StructValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &ReportHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/periods", h.GetPeriods)
	r.Get("/categories", h.GetCategories)
	r.Get("/categories/{name}", h.GetCategory)

	r.Post("/derive", h.Derive)
	r.Post("/derive/batch", h.DeriveBatch)
	r.Post("/overview", h.Overview)

	return r
}

// GetPeriods handles GET /api/v1/periods
func (h *ReportHandler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.PeriodsResponse{
		Periods:        orEmpty(h.service.Periods()),
		DefaultPeriods: orEmpty(h.service.DefaultPeriods()),
	})
}

// GetCategories handles GET /api/v1/categories
func (h *ReportHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories()
	resp := api.CategoriesResponse{
		Categories: make([]api.CategoryResponse, len(categories)),
		Count:      len(categories),
	}
	for i, c := range categories {
		resp.Categories[i] = categoryResponse(c)
	}
	render.JSON(w, r, resp)
}

// GetCategory handles GET /api/v1/categories/{name}
func (h *ReportHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.Category(chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, categoryResponse(category))
}

// Derive handles POST /api/v1/derive
func (h *ReportHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req api.DeriveRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.logger.InfoContext(r.Context(), "deriving category",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("category", req.Category),
		slog.Any("periods", req.Periods))

	view, err := h.service.Derive(r.Context(), services.DeriveRequest{
		Category:         req.Category,
		Periods:          req.Periods,
		Headline:         req.Headline,
		RequireBase:      req.RequireBase,
		Magnitudes:       req.Magnitudes,
		DropEmptyPeriods: req.DropEmptyPeriods,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, derivedViewResponse(view))
}

// DeriveBatch handles POST /api/v1/derive/batch
func (h *ReportHandler) DeriveBatch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchDeriveRequest
	if !h.decode(w, r, &req) {
		return
	}

	views, err := h.service.DeriveAll(r.Context(), req.Periods, req.Categories)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := api.BatchDeriveResponse{
		Views: make([]api.DerivedViewResponse, len(views)),
		Count: len(views),
	}
	for i, v := range views {
		resp.Views[i] = derivedViewResponse(v)
	}
	render.JSON(w, r, resp)
}

// Overview handles POST /api/v1/overview
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var req api.OverviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	overview, err := h.service.Overview(r.Context(), req.Periods, req.Columns)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, overviewResponse(overview))
}

// decode reads and validates a JSON body into dst. An empty body decodes
// to the zero request. It writes the problem response itself and reports
// whether the handler should continue.
func (h *ReportHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil && !errors.Is(err, io.EOF) {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}

	if h.validator != nil {
		if err := h.validator.ValidateStruct(dst); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return false
		}
	}
	return true
}
