package entity

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentMethod = errors.New("payment_method deve ser cash ou online")
	ErrInvalidPaymentAmount = errors.New("payment_amount deve ser maior que zero")
	ErrMissingLeadID        = errors.New("lead_id é obrigatório")
)

// PaymentRecord é o que o fluxo de cobrança entrega ao controlador.
type PaymentRecord struct {
	LeadID        string        `json:"lead_id"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentAmount float64       `json:"payment_amount"`
	UPIID         *string       `json:"upi_id,omitempty"`
	PaymentDate   time.Time     `json:"payment_date"`
}

func (r PaymentRecord) Validate() error {
	if strings.TrimSpace(r.LeadID) == "" {
		return ErrMissingLeadID
	}
	if !r.PaymentMethod.Collectable() {
		return ErrInvalidPaymentMethod
	}
	if !ValidAmount(r.PaymentAmount) {
		return ErrInvalidPaymentAmount
	}
	return nil
}

// MaxAmount é o maior valor que cabe nas colunas NUMERIC(12,2).
const MaxAmount = 9999999999.99

// ValidAmount: positivo, até MaxAmount e com no máximo duas casas decimais.
func ValidAmount(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxAmount {
		return false
	}
	d := decimal.NewFromFloat(v)
	return d.Equal(d.Round(2))
}
