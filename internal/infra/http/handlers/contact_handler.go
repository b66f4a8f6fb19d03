package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/infra/http/middleware"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

type ContactHandler struct {
	SubmitUseCase *usecase.SubmitContactFormUseCase
	rateLimiter   *RateLimiter
}

// NewContactHandler limita a perMinute envios por IP.
func NewContactHandler(uc *usecase.SubmitContactFormUseCase, perMinute int) *ContactHandler {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &ContactHandler{
		SubmitUseCase: uc,
		rateLimiter:   NewRateLimiter(perMinute, time.Minute),
	}
}

// Close para a limpeza do rate limiter.
func (h *ContactHandler) Close() {
	h.rateLimiter.Close()
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		log.Printf("⚠️ Rate limit no formulário para %s", clientIP)
		writeJSON(w, http.StatusTooManyRequests, usecase.Result{
			Success: false,
			Error:   "Too many requests. Please try again later.",
			Code:    CodeRateLimited,
		})
		return
	}

	var input usecase.ContactFormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeBadJSON(w)
		return
	}

	lead, err := h.SubmitUseCase.Execute(r.Context(), input)
	if err == nil {
		middleware.RecordLeadCreated()
	}
	writeResult(w, http.StatusCreated, lead, err)
}
