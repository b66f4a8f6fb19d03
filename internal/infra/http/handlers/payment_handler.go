package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/machinecare-leads/internal/infra/http/middleware"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

type PaymentHandler struct {
	CaptureUseCase *usecase.CapturePaymentUseCase
	QRUseCase      *usecase.GenerateQRUseCase
}

type GenerateQRRequest struct {
	UPIID  string      `json:"upi_id"`
	Amount AmountInput `json:"amount"`
}

type GenerateQRResponse struct {
	QR   *upiqr.QRCode      `json:"qr"`
	Apps []upiqr.PaymentApp `json:"apps"`
}

type RecordPaymentRequest struct {
	PaymentMethod string      `json:"payment_method"`
	PaymentAmount AmountInput `json:"payment_amount"`
	UPIID         string      `json:"upi_id"`
}

func (h *PaymentHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	var req GenerateQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	amount, err := req.Amount.Parse()
	if err != nil {
		writeResult(w, http.StatusOK, nil, err)
		return
	}

	qr, err := h.QRUseCase.Execute(r.Context(), usecase.GenerateQRInput{
		LeadID: chi.URLParam(r, "id"),
		UPIID:  req.UPIID,
		Amount: amount,
	})
	if err != nil {
		writeResult(w, http.StatusOK, nil, err)
		return
	}
	writeResult(w, http.StatusOK, GenerateQRResponse{QR: qr, Apps: upiqr.PaymentApps}, nil)
}

// RecordPayment é a confirmação manual do admin. Não há verificação do pagamento.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	amount, err := req.PaymentAmount.Parse()
	if err != nil {
		writeResult(w, http.StatusOK, nil, err)
		return
	}

	lead, err := h.CaptureUseCase.Execute(r.Context(), usecase.CapturePaymentInput{
		LeadID:        chi.URLParam(r, "id"),
		PaymentMethod: req.PaymentMethod,
		PaymentAmount: amount,
		UPIID:         req.UPIID,
	})
	if err == nil {
		middleware.RecordPayment(string(lead.PaymentMethod))
	}
	writeResult(w, http.StatusOK, lead, err)
}
