package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
)

type CaptureStage string

const (
	StageAmountEntry          CaptureStage = "amount_entry"
	StageMethodSelection      CaptureStage = "method_selection"
	StageAwaitingUPI          CaptureStage = "awaiting_upi"
	StageAwaitingConfirmation CaptureStage = "awaiting_confirmation"
	StageCompleted            CaptureStage = "completed"
	StageCancelled            CaptureStage = "cancelled"
)

var ErrInvalidCaptureStep = &ValidationError{
	Code:    CodeInvalidCapture,
	Message: "payment capture step not allowed at this stage",
}

// AmountUpdate é a saída do modo edição: vira uma chamada de setAmount.
type AmountUpdate struct {
	LeadID string
	Amount float64
}

// PaymentCapture guarda o rascunho do modal de cobrança. Nada aqui é gravado;
// só o PaymentRecord (ou AmountUpdate) devolvido chega ao controlador.
type PaymentCapture struct {
	LeadID    string
	PayeeName string
	Generator QRGenerator

	stage    CaptureStage
	existing *float64
	amount   float64
	upiID    string
	qr       *upiqr.QRCode
}

// NewAmountCapture abre o modal de valor. Com valor já gravado entra em modo edição.
func NewAmountCapture(lead *entity.Lead) *PaymentCapture {
	pc := &PaymentCapture{
		LeadID:    lead.ID,
		PayeeName: lead.Name,
		stage:     StageAmountEntry,
	}
	if lead.Amount != nil && *lead.Amount > 0 {
		v := *lead.Amount
		pc.existing = &v
	}
	return pc
}

// NewPaymentCollection é o "Collect Payment" de um lead concluído e não pago.
func NewPaymentCollection(lead *entity.Lead) (*PaymentCapture, error) {
	if lead.Amount == nil || !entity.ValidAmount(*lead.Amount) {
		return nil, newValidationError(CodeInvalidAmount, "lead has no recorded amount to collect")
	}
	if lead.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, newValidationError(CodeInvalidPayment, "payment already recorded for this lead")
	}
	return &PaymentCapture{
		LeadID:    lead.ID,
		PayeeName: lead.Name,
		stage:     StageMethodSelection,
		amount:    *lead.Amount,
	}, nil
}

func (pc *PaymentCapture) Stage() CaptureStage { return pc.stage }

func (pc *PaymentCapture) Amount() float64 { return pc.amount }

// Prefill é o valor mostrado no campo ao abrir em modo edição.
func (pc *PaymentCapture) Prefill() *float64 { return pc.existing }

func (pc *PaymentCapture) IsUpdate() bool { return pc.existing != nil }

func (pc *PaymentCapture) QR() *upiqr.QRCode { return pc.qr }

// SubmitAmount valida o texto digitado. Em modo edição devolve o AmountUpdate e
// encerra; em modo novo segue para a escolha do método levando o valor.
func (pc *PaymentCapture) SubmitAmount(raw string) (*AmountUpdate, error) {
	if pc.stage != StageAmountEntry {
		return nil, ErrInvalidCaptureStep
	}

	v, err := ParseAmount(raw)
	if err != nil {
		return nil, err
	}

	if pc.existing != nil {
		if v == *pc.existing {
			return nil, newValidationError(CodeInvalidAmount, "amount is unchanged")
		}
		pc.amount = v
		pc.stage = StageCompleted
		return &AmountUpdate{LeadID: pc.LeadID, Amount: v}, nil
	}

	pc.amount = v
	pc.stage = StageMethodSelection
	return nil, nil
}

func (pc *PaymentCapture) ChooseCash(now time.Time) (*entity.PaymentRecord, error) {
	if pc.stage != StageMethodSelection {
		return nil, ErrInvalidCaptureStep
	}
	pc.stage = StageCompleted
	return &entity.PaymentRecord{
		LeadID:        pc.LeadID,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentAmount: pc.amount,
		PaymentDate:   now,
	}, nil
}

func (pc *PaymentCapture) ChooseOnline() error {
	if pc.stage != StageMethodSelection {
		return ErrInvalidCaptureStep
	}
	pc.stage = StageAwaitingUPI
	return nil
}

// GenerateQR monta só o artefato de exibição. Nenhum pagamento é verificado.
func (pc *PaymentCapture) GenerateQR(upiID string) (*upiqr.QRCode, error) {
	if pc.stage != StageAwaitingUPI {
		return nil, ErrInvalidCaptureStep
	}

	gen := pc.Generator
	if gen == nil {
		gen = upiqr.NewGenerator("")
	}

	upiID = strings.TrimSpace(upiID)
	qr, err := gen.Generate(upiqr.GenerateInput{
		UPIID:     upiID,
		PayeeName: pc.PayeeName,
		Amount:    pc.amount,
	})
	if err != nil {
		if errors.Is(err, upiqr.ErrInvalidAmount) {
			return nil, newValidationError(CodeInvalidAmount, err.Error())
		}
		return nil, newValidationError(CodeInvalidPayment, err.Error())
	}

	pc.upiID = upiID
	pc.qr = qr
	pc.stage = StageAwaitingConfirmation
	return qr, nil
}

// Back descarta o QR e volta para a digitação do UPI (que fica preenchida),
// ou da digitação do UPI de volta para a escolha do método.
func (pc *PaymentCapture) Back() error {
	switch pc.stage {
	case StageAwaitingConfirmation:
		pc.qr = nil
		pc.stage = StageAwaitingUPI
	case StageAwaitingUPI:
		pc.stage = StageMethodSelection
	default:
		return ErrInvalidCaptureStep
	}
	return nil
}

func (pc *PaymentCapture) UPIID() string { return pc.upiID }

// ConfirmReceived é o botão "pagamento recebido": confirmação manual.
func (pc *PaymentCapture) ConfirmReceived(now time.Time) (*entity.PaymentRecord, error) {
	if pc.stage != StageAwaitingConfirmation {
		return nil, ErrInvalidCaptureStep
	}
	upi := pc.upiID
	pc.stage = StageCompleted
	return &entity.PaymentRecord{
		LeadID:        pc.LeadID,
		PaymentMethod: entity.PaymentMethodOnline,
		PaymentAmount: pc.amount,
		UPIID:         &upi,
		PaymentDate:   now,
	}, nil
}

// Cancel fecha o modal sem confirmar e joga fora o rascunho.
func (pc *PaymentCapture) Cancel() {
	pc.stage = StageCancelled
	pc.amount = 0
	pc.upiID = ""
	pc.qr = nil
}
