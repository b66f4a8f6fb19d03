package usecase

import (
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

type ContactFormInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

type LeadView string

const (
	ViewToday    LeadView = "today"
	ViewPrevious LeadView = "previous"
	ViewAll      LeadView = "all"
)

type ListLeadsInput struct {
	View   LeadView `json:"view"`
	Search string   `json:"q"`
	Status string   `json:"status"`
}

type UpdateLeadStatusInput struct {
	LeadID string
	Status string
	Amount *float64
	Notes  *string
}

type UpdateLeadStatusOutput struct {
	Lead *entity.Lead `json:"lead"`
	// AmountRequired pede ao chamador o modal de valor antes de considerar o lead concluído.
	AmountRequired bool `json:"amount_required"`
}

type UpdateLeadAmountInput struct {
	LeadID string
	Amount float64
}

type UpdateLeadPriorityInput struct {
	LeadID   string
	Priority string
}

type LeadDetailOutput struct {
	Lead              *entity.Lead        `json:"lead"`
	Links             entity.ContactLinks `json:"links"`
	CanCollectPayment bool                `json:"can_collect_payment"`
}

type StatsOutput struct {
	Stats   *entity.LeadStats `json:"stats"`
	Display StatsDisplay      `json:"display"`
}

// StatsDisplay são os valores do painel já formatados em rupias.
type StatsDisplay struct {
	AvgPaymentAmount string `json:"avg_payment_amount"`
	TotalRevenue     string `json:"total_revenue"`
	PendingRevenue   string `json:"pending_revenue"`
}

type CapturePaymentInput struct {
	LeadID        string
	PaymentMethod string
	PaymentAmount *float64
	UPIID         string
}

type GenerateQRInput struct {
	LeadID string
	UPIID  string
	Amount *float64
}
