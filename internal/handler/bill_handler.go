package handler

import (
	"net/http"

	"prodexa/internal/model"
	"prodexa/internal/service"

	"github.com/rs/zerolog"
)

// BillHandler handles billing HTTP requests.
type BillHandler struct {
	service service.BillingService
	logger  zerolog.Logger
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(service service.BillingService, logger zerolog.Logger) *BillHandler {
	return &BillHandler{
		service: service,
		logger:  logger.With().Str("handler", "bill").Logger(),
	}
}

// Open handles POST /api/bills requests.
func (h *BillHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req model.OpenBillRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.Open(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/bills/{id} requests.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Discard handles DELETE /api/bills/{id} requests.
func (h *BillHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Discard(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/bills/{id}/items requests.
func (h *BillHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.AddItem(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/bills/{id}/items requests.
func (h *BillHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Clear(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SetRates handles PUT /api/bills/{id}/rates requests.
func (h *BillHandler) SetRates(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.RatesRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	view, err := h.service.SetRates(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Totals handles GET /api/bills/{id}/totals requests.
func (h *BillHandler) Totals(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	totals, err := h.service.Totals(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Finalize handles POST /api/bills/{id}/finalize requests.
func (h *BillHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Finalize(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Share handles GET /api/bills/{id}/share requests.
func (h *BillHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := billID(w, r, h.logger)
	if !ok {
		return
	}

	link, err := h.service.Share(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ShareResponse{Link: link})
}
