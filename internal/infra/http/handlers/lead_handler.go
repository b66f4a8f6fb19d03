package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/middleware"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

// LeadHandler atende o painel administrativo.
type LeadHandler struct {
	ListUseCase           *usecase.ListLeadsUseCase
	GetUseCase            *usecase.GetLeadUseCase
	StatsUseCase          *usecase.GetLeadStatsUseCase
	UpdateStatusUseCase   *usecase.UpdateLeadStatusUseCase
	UpdateAmountUseCase   *usecase.UpdateLeadAmountUseCase
	UpdatePriorityUseCase *usecase.UpdateLeadPriorityUseCase
	DeleteUseCase         *usecase.DeleteLeadUseCase
}

type UpdateStatusRequest struct {
	Status string      `json:"status"`
	Amount AmountInput `json:"amount"`
	Notes  *string     `json:"notes"`
}

type UpdateAmountRequest struct {
	Amount AmountInput `json:"amount"`
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.ListLeadsInput{
		View:   usecase.LeadView(q.Get("view")),
		Search: q.Get("q"),
		Status: q.Get("status"),
	}

	leads, err := h.ListUseCase.Execute(r.Context(), input)
	writeResult(w, http.StatusOK, leads, err)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.GetUseCase.Execute(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, http.StatusOK, out, err)
}

func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	out, err := h.StatsUseCase.Execute(r.Context())
	writeResult(w, http.StatusOK, out, err)
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	amount, err := req.Amount.Parse()
	if err != nil {
		writeResult(w, http.StatusOK, nil, err)
		return
	}

	out, err := h.UpdateStatusUseCase.Execute(r.Context(), usecase.UpdateLeadStatusInput{
		LeadID: chi.URLParam(r, "id"),
		Status: req.Status,
		Amount: amount,
		Notes:  req.Notes,
	})
	if err == nil {
		middleware.RecordStatusChange(string(out.Lead.Status))
	}
	writeResult(w, http.StatusOK, out, err)
}

func (h *LeadHandler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	var req UpdateAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	amount, err := req.Amount.Parse()
	if err == nil && amount == nil {
		_, err = usecase.ParseAmount("")
	}
	if err != nil {
		writeResult(w, http.StatusOK, nil, err)
		return
	}

	out, err := h.UpdateAmountUseCase.Execute(r.Context(), usecase.UpdateLeadAmountInput{
		LeadID: chi.URLParam(r, "id"),
		Amount: *amount,
	})
	writeResult(w, http.StatusOK, out, err)
}

func (h *LeadHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	var req UpdatePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	lead, err := h.UpdatePriorityUseCase.Execute(r.Context(), usecase.UpdateLeadPriorityInput{
		LeadID:   chi.URLParam(r, "id"),
		Priority: req.Priority,
	})
	writeResult(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.DeleteUseCase.Execute(r.Context(), id)
	writeResult(w, http.StatusOK, map[string]string{"id": id}, err)
}
