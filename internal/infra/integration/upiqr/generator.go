package upiqr

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://upi-payment-qr.vercel.app/api/qrgen"

var (
	ErrInvalidUPIID  = errors.New("upi id inválido (esperado handle@provedor)")
	ErrInvalidAmount = errors.New("valor do QR deve ser maior que zero")

	upiIDRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z][a-zA-Z0-9]{1,63}$`)
	fileUnsafe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
)

type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{baseURL: strings.TrimRight(baseURL, "?")}
}

func ValidUPIID(id string) bool {
	return upiIDRegex.MatchString(strings.TrimSpace(id))
}

// Generate monta a URL da imagem e o deep link upi://pay. Não há chamada de rede.
func (g *Generator) Generate(input GenerateInput) (*QRCode, error) {
	upiID := strings.TrimSpace(input.UPIID)
	if !ValidUPIID(upiID) {
		return nil, ErrInvalidUPIID
	}
	if !(input.Amount > 0) {
		return nil, ErrInvalidAmount
	}

	amount := formatAmount(input.Amount)

	img := url.Values{}
	img.Set("upiid", upiID)
	img.Set("name", input.PayeeName)
	img.Set("amount", amount)

	link := url.Values{}
	link.Set("pa", upiID)
	link.Set("pn", input.PayeeName)
	link.Set("am", amount)
	link.Set("cu", "INR")

	return &QRCode{
		UPIID:    upiID,
		Amount:   input.Amount,
		ImageURL: g.baseURL + "?" + img.Encode(),
		DeepLink: "upi://pay?" + link.Encode(),
		FileName: fmt.Sprintf("payment-qr-%s-%s.png", fileUnsafe.ReplaceAllString(input.PayeeName, "-"), amount),
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
