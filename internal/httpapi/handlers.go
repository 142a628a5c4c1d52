package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/cashier"
	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/logger"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

type Handler struct {
	cashier *cashier.Cashier
}

func NewHandler(c *cashier.Cashier) *Handler {
	return &Handler{cashier: c}
}

type drawerRequest struct {
	Counts      map[string]string `json:"counts"`
	SalesAmount string            `json:"salesAmount"`
}

type recordRequest struct {
	DrawerNumber string            `json:"drawerNumber"`
	Counts       map[string]string `json:"counts"`
	SalesAmount  string            `json:"salesAmount"`
}

type totalResponse struct {
	Total      string `json:"total"`
	TotalMinor int64  `json:"totalMinor"`
}

type withdrawalResponse struct {
	Amount       string           `json:"amount"`
	DrawerTotal  string           `json:"drawerTotal"`
	Remaining    string           `json:"remaining"`
	Plan         map[string]int64 `json:"plan"`
	Instructions []string         `json:"instructions"`
}

// Total handles POST /api/drawer/total
func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	var req drawerRequest
	if !decode(w, r, &req) {
		return
	}

	counted, err := h.cashier.Total(req.Counts)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, totalResponse{
		Total:      till.DecimalFromMinor(counted.Total).StringFixed(2),
		TotalMinor: counted.Total,
	})
}

// Withdrawal handles POST /api/drawer/withdrawal
func (h *Handler) Withdrawal(w http.ResponseWriter, r *http.Request) {
	var req drawerRequest
	if !decode(w, r, &req) {
		return
	}

	plan, err := h.cashier.Withdraw(req.Counts, req.SalesAmount)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, withdrawalResponse{
		Amount:       till.DecimalFromMinor(plan.Amount).StringFixed(2),
		DrawerTotal:  till.DecimalFromMinor(plan.DrawerTotal).StringFixed(2),
		Remaining:    till.DecimalFromMinor(plan.Remaining).StringFixed(2),
		Plan:         plan.Counts,
		Instructions: cashier.Instructions(plan, h.cashier.Catalog()),
	})
}

// ListRecords handles GET /api/records
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.cashier.ListRecords(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

// CreateRecord handles POST /api/records
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decode(w, r, &req) {
		return
	}

	record, err := h.cashier.SaveRecord(r.Context(), req.DrawerNumber, req.Counts, req.SalesAmount)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, record)
}

// DeleteRecord handles DELETE /api/records/{id}
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid record id", string(till.KindInvalidInput))
		return
	}

	if err := h.cashier.DeleteRecord(r.Context(), id); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Denominations handles GET /api/denominations
func (h *Handler) Denominations(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"denominations": h.cashier.Catalog().Denominations(),
		"reserve":       till.DecimalFromMinor(h.cashier.Reserve()).StringFixed(2),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", string(till.KindInvalidInput))
		return false
	}
	return true
}

// writeFailure maps cashier errors onto status codes
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var tillErr *till.Error
	switch {
	case errors.As(err, &tillErr):
		status := http.StatusUnprocessableEntity
		if tillErr.Kind == till.KindInvalidInput {
			status = http.StatusBadRequest
		}
		WriteError(w, status, tillErr.Error(), string(tillErr.Kind))
	case errors.Is(err, interfaces.ErrRecordNotFound):
		WriteError(w, http.StatusNotFound, "Record not found", "")
	default:
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
