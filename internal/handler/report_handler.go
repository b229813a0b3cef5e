package handler

import (
	"bytes"
	"net/http"

	"prodexa/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ReportHandler handles summary and chart HTTP requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Summary handles GET /api/reports/summary requests.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// SummaryExcel handles GET /api/reports/summary.xlsx requests.
func (h *ReportHandler) SummaryExcel(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.WriteExcel(r.Context(), &buf); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "product_summary.xlsx", buf.Bytes())
}

// SummaryCSV handles GET /api/reports/summary.csv requests.
func (h *ReportHandler) SummaryCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.WriteCSV(r.Context(), &buf); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeFile(w, "text/csv; charset=utf-8", "product_summary.csv", buf.Bytes())
}

// Chart handles GET /api/reports/charts/{kind} requests.
func (h *ReportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.WriteChart(r.Context(), &buf, chi.URLParam(r, "kind")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
