package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/summary"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
)

type SummaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	SetOverride(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{summaryService: summaryService}
}

func summaryFilterFromQuery(r *http.Request) summary.SummaryFilter {
	filter := summary.SummaryFilter{}
	if month := r.URL.Query().Get("month"); month != "" {
		filter.Month = &month
	}
	return filter
}

// List handles GET /monthly-summary?month=August%202025
func (h *summaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaryService.Summarize(r.Context(), summaryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /monthly-summary/export
func (h *summaryHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := summaryFilterFromQuery(r)

	data, err := h.summaryService.ExportSummary(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	suffix := "all"
	if filter.Month != nil {
		suffix = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(*filter.Month)), " ", "-")
	}
	response.File(w, export.ContentTypeXLSX, fmt.Sprintf("monthly-summary-%s.xlsx", suffix), data)
}

// SetOverride handles PUT /monthly-summary/{employeeID}
func (h *summaryHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req summary.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.UpdatedBy = principal.UserID

	result, err := h.summaryService.SetOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly summary override saved", result)
}
