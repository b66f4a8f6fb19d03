package entity

import (
	"errors"
	"fmt"
	"strings"
)

type LeadStatus string

const (
	StatusPending   LeadStatus = "pending"
	StatusContacted LeadStatus = "contacted"
	StatusQualified LeadStatus = "qualified"
	StatusConverted LeadStatus = "converted"
	StatusRejected  LeadStatus = "rejected"
	StatusDone      LeadStatus = "done"
)

type LeadPriority string

const (
	PriorityLow    LeadPriority = "low"
	PriorityMedium LeadPriority = "medium"
	PriorityHigh   LeadPriority = "high"
	PriorityUrgent LeadPriority = "urgent"
)

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodOnline  PaymentMethod = "online"
	PaymentMethodPending PaymentMethod = "pending"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

var (
	ErrUnknownStatus        = errors.New("status desconhecido")
	ErrUnknownPriority      = errors.New("prioridade desconhecida")
	ErrUnknownPaymentMethod = errors.New("método de pagamento desconhecido")
)

// Transições permitidas via setStatus. done é terminal; só RecordPayment
// escreve done de novo.
var statusTransitions = map[LeadStatus]map[LeadStatus]bool{
	StatusPending:   {StatusContacted: true, StatusQualified: true, StatusRejected: true, StatusDone: true},
	StatusContacted: {StatusQualified: true, StatusConverted: true, StatusRejected: true, StatusDone: true},
	StatusQualified: {StatusConverted: true, StatusRejected: true, StatusDone: true},
	StatusConverted: {StatusDone: true},
	StatusRejected:  {StatusPending: true, StatusDone: true},
	StatusDone:      {},
}

// CanTransition aceita o mesmo estado (atualizar notas/valor) exceto em done.
func CanTransition(from, to LeadStatus) bool {
	if from == "" {
		return to.Valid()
	}
	nexts, ok := statusTransitions[from]
	if !ok {
		return false
	}
	if from == to {
		return from != StatusDone
	}
	return nexts[to]
}

type TransitionError struct {
	From LeadStatus
	To   LeadStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transição de status inválida: %s -> %s", e.From, e.To)
}

func (s LeadStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func ParseLeadStatus(raw string) (LeadStatus, error) {
	s := LeadStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

func (p LeadPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ParseLeadPriority(raw string) (LeadPriority, error) {
	p := LeadPriority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", ErrUnknownPriority
	}
	return p, nil
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodOnline, PaymentMethodPending:
		return true
	}
	return false
}

// Collectable: só cash e online fecham um pagamento.
func (m PaymentMethod) Collectable() bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !m.Valid() {
		return "", ErrUnknownPaymentMethod
	}
	return m, nil
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}
