package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead não encontrado")

// SourceWebsite marca leads criados pelo formulário público.
const SourceWebsite = "website"

// Lead é um pedido de serviço acompanhado até o pagamento.
type Lead struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Email   *string  `json:"email"`
	Service string   `json:"service"`
	Message string   `json:"message"`
	Pincode int      `json:"pincode"`
	Address string   `json:"address"`
	Amount  *float64 `json:"amount"` // preço do serviço, não o valor recebido

	Status   LeadStatus   `json:"status"`
	Priority LeadPriority `json:"priority"`
	Notes    *string      `json:"notes"`
	Source   *string      `json:"source"`

	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	MarkedDoneAt *time.Time `json:"marked_done_at"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentAmount *float64      `json:"payment_amount"`
	UPIID         *string       `json:"upi_id"`
	PaymentDate   *time.Time    `json:"payment_date"`
}

// ContactDetails é o que o formulário público entrega, já validado.
type ContactDetails struct {
	Name    string
	Phone   string
	Email   string
	Service string
	Message string
	Pincode int
	Address string
}

// NewLead cria o lead no estado inicial do funil.
func NewLead(details ContactDetails, now time.Time) *Lead {
	source := SourceWebsite
	lead := &Lead{
		ID:            uuid.New().String(),
		Name:          details.Name,
		Phone:         details.Phone,
		Service:       details.Service,
		Message:       details.Message,
		Pincode:       details.Pincode,
		Address:       details.Address,
		Status:        StatusPending,
		Priority:      PriorityMedium,
		Source:        &source,
		PaymentMethod: PaymentMethodPending,
		PaymentStatus: PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if details.Email != "" {
		email := details.Email
		lead.Email = &email
	}

	return lead
}

// ApplyStatus move o lead para status. Ao marcar done grava marked_done_at e,
// se vier valor positivo, volta o pagamento para "aguardando cobrança".
func (l *Lead) ApplyStatus(status LeadStatus, amount *float64, notes *string, now time.Time) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	if !CanTransition(l.Status, status) {
		return &TransitionError{From: l.Status, To: status}
	}

	l.Status = status
	if amount != nil {
		v := *amount
		l.Amount = &v
	}
	if notes != nil {
		n := *notes
		l.Notes = &n
	}

	if status == StatusDone {
		doneAt := now
		l.MarkedDoneAt = &doneAt
		if amount != nil && *amount > 0 {
			l.PaymentStatus = PaymentStatusPending
			l.PaymentMethod = PaymentMethodPending
		}
	}

	l.UpdatedAt = now
	return nil
}

func (l *Lead) SetAmount(amount float64, now time.Time) {
	l.Amount = &amount
	l.UpdatedAt = now
}

func (l *Lead) SetPriority(priority LeadPriority, now time.Time) error {
	if !priority.Valid() {
		return ErrUnknownPriority
	}
	l.Priority = priority
	l.UpdatedAt = now
	return nil
}

// RecordPayment conclui o pagamento e força status=done: pagamento recebido
// implica serviço concluído. A tabela de transições não se aplica aqui.
func (l *Lead) RecordPayment(rec PaymentRecord, now time.Time) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	amount := rec.PaymentAmount
	paidAt := rec.PaymentDate
	doneAt := now

	l.PaymentMethod = rec.PaymentMethod
	l.PaymentStatus = PaymentStatusCompleted
	l.PaymentAmount = &amount
	l.PaymentDate = &paidAt
	l.UPIID = nil
	if rec.UPIID != nil && *rec.UPIID != "" {
		upi := *rec.UPIID
		l.UPIID = &upi
	}

	l.Status = StatusDone
	l.MarkedDoneAt = &doneAt
	l.UpdatedAt = now
	return nil
}

// NeedsAmount: lead concluído sem preço do serviço registrado.
func (l *Lead) NeedsAmount() bool {
	return l.Status == StatusDone && (l.Amount == nil || *l.Amount <= 0)
}

// CanCollectPayment espelha a ação "Collect Payment" do painel.
func (l *Lead) CanCollectPayment() bool {
	return l.Status == StatusDone &&
		l.PaymentStatus != PaymentStatusCompleted &&
		l.Amount != nil && *l.Amount > 0
}

// CheckPaymentInvariant: pagamento completed sempre tem valor e método reais.
func (l *Lead) CheckPaymentInvariant() error {
	if l.PaymentStatus != PaymentStatusCompleted {
		return nil
	}
	if l.PaymentAmount == nil || *l.PaymentAmount <= 0 {
		return errors.New("payment completed without payment_amount")
	}
	if l.PaymentMethod != PaymentMethodCash && l.PaymentMethod != PaymentMethodOnline {
		return errors.New("payment completed without payment_method")
	}
	return nil
}

// LeadFilter restringe listagens; campos zero não filtram.
type LeadFilter struct {
	CreatedFrom *time.Time // inclusivo
	CreatedTo   *time.Time // exclusivo
	Status      LeadStatus
	Search      string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time) (*LeadStats, error)
}
