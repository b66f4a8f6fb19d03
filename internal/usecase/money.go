package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

// Dígitos com no máximo um ponto decimal; sinal, vírgula e expoente ficam de fora.
var amountRegex = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

var maxAmount = decimal.NewFromFloat(entity.MaxAmount)

// QuickAmounts são os atalhos de valor do modal.
var QuickAmounts = []float64{100, 500, 1000, 2000, 5000}

// ParseAmount valida o texto digitado no modal de valor.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, newValidationError(CodeInvalidAmount, "amount is required")
	}
	if !amountRegex.MatchString(s) {
		return 0, newValidationError(CodeInvalidAmount, "amount must be a number with at most one decimal point")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, newValidationError(CodeInvalidAmount, "amount must be a number")
	}
	if !d.IsPositive() {
		return 0, newValidationError(CodeInvalidAmount, "amount must be greater than zero")
	}
	if !d.Equal(d.Round(2)) {
		return 0, newValidationError(CodeInvalidAmount, "amount must have at most two decimal places")
	}
	if d.GreaterThan(maxAmount) {
		return 0, newValidationError(CodeInvalidAmount, "amount must not exceed 9999999999.99")
	}

	v, _ := d.Float64()
	return v, nil
}

func validateAmount(v float64) error {
	if !entity.ValidAmount(v) {
		return newValidationError(CodeInvalidAmount, "amount must be greater than zero, at most 9999999999.99 and have at most two decimal places")
	}
	return nil
}

// FormatRupees formata com agrupamento indiano (1,25,000). nil vira ₹0.
func FormatRupees(v *float64) string {
	if v == nil {
		return "₹0"
	}

	d := decimal.NewFromFloat(*v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart := d.Truncate(0)
	frac := d.Sub(intPart)

	out := sign + "₹" + groupIndian(intPart.String())
	if !frac.IsZero() {
		// "0.5" -> ".5"
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
