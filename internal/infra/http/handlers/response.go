package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/machinecare-leads/internal/usecase"
)

const CodeRateLimited = "RATE_LIMITED"

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeResult devolve o resultado etiquetado com o status HTTP da taxonomia.
func writeResult(w http.ResponseWriter, okStatus int, data interface{}, err error) {
	res := usecase.NewResult(data, err)
	if err != nil {
		writeJSON(w, statusFor(err), res)
		return
	}
	writeJSON(w, okStatus, res)
}

func statusFor(err error) int {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		if verr.Code == usecase.CodeInvalidTransition {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case usecase.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, usecase.Result{
		Success: false,
		Error:   "invalid JSON body",
		Code:    usecase.CodeValidation,
	})
}

// AmountInput aceita 1500, 99.5 ou "1500" e valida o texto como o modal de valor.
type AmountInput struct {
	raw string
	set bool
}

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	a.set = true

	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.raw)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or numeric string")
	}
	a.raw = n.String()
	// 1e3 vira 1000 antes da validação textual.
	if f, err := n.Float64(); err == nil && strings.ContainsAny(a.raw, "eE") {
		a.raw = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return nil
}

func (a *AmountInput) Provided() bool { return a != nil && a.set }

// Parse devolve nil quando o campo veio ausente.
func (a *AmountInput) Parse() (*float64, error) {
	if !a.Provided() {
		return nil, nil
	}
	v, err := usecase.ParseAmount(a.raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
