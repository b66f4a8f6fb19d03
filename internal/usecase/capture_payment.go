package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
)

// CapturePaymentUseCase percorre o fluxo de cobrança de uma vez: método,
// QR opcional e confirmação, terminando em recordPayment.
type CapturePaymentUseCase struct {
	Repo      LeadRepositoryInterface
	Record    *RecordPaymentUseCase
	Generator QRGenerator
	Now       func() time.Time
}

func NewCapturePaymentUseCase(repo LeadRepositoryInterface, record *RecordPaymentUseCase, generator QRGenerator) *CapturePaymentUseCase {
	return &CapturePaymentUseCase{
		Repo:      repo,
		Record:    record,
		Generator: generator,
		Now:       time.Now,
	}
}

func (uc *CapturePaymentUseCase) Execute(ctx context.Context, input CapturePaymentInput) (*entity.Lead, error) {
	method, err := entity.ParsePaymentMethod(input.PaymentMethod)
	if err != nil || !method.Collectable() {
		return nil, newValidationError(CodeInvalidPayment, "payment_method must be cash or online")
	}
	if input.PaymentAmount != nil {
		if err := validateAmount(*input.PaymentAmount); err != nil {
			return nil, err
		}
	}
	if method == entity.PaymentMethodOnline && strings.TrimSpace(input.UPIID) == "" {
		return nil, newValidationError(CodeInvalidPayment, "upi_id is required for online payments")
	}

	lead, err := loadLead(ctx, uc.Repo, input.LeadID)
	if err != nil {
		return nil, err
	}

	pc, err := openCollection(lead, input.PaymentAmount, uc.Generator)
	if err != nil {
		return nil, err
	}

	var rec *entity.PaymentRecord
	switch method {
	case entity.PaymentMethodCash:
		rec, err = pc.ChooseCash(uc.Now())
	case entity.PaymentMethodOnline:
		if err = pc.ChooseOnline(); err != nil {
			break
		}
		if _, err = pc.GenerateQR(input.UPIID); err != nil {
			break
		}
		rec, err = pc.ConfirmReceived(uc.Now())
	}
	if err != nil {
		return nil, err
	}

	return uc.Record.Execute(ctx, *rec)
}

// GenerateQRUseCase devolve o QR para o admin mostrar ao cliente.
type GenerateQRUseCase struct {
	Repo      LeadRepositoryInterface
	Generator QRGenerator
}

func NewGenerateQRUseCase(repo LeadRepositoryInterface, generator QRGenerator) *GenerateQRUseCase {
	return &GenerateQRUseCase{Repo: repo, Generator: generator}
}

func (uc *GenerateQRUseCase) Execute(ctx context.Context, input GenerateQRInput) (*upiqr.QRCode, error) {
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	lead, err := loadLead(ctx, uc.Repo, input.LeadID)
	if err != nil {
		return nil, err
	}

	pc, err := openCollection(lead, input.Amount, uc.Generator)
	if err != nil {
		return nil, err
	}
	if err := pc.ChooseOnline(); err != nil {
		return nil, err
	}
	return pc.GenerateQR(input.UPIID)
}

// openCollection usa o valor informado ou, sem ele, o preço gravado no lead.
func openCollection(lead *entity.Lead, amount *float64, gen QRGenerator) (*PaymentCapture, error) {
	if amount == nil {
		pc, err := NewPaymentCollection(lead)
		if err != nil {
			return nil, err
		}
		pc.Generator = gen
		return pc, nil
	}

	if lead.PaymentStatus == entity.PaymentStatusCompleted {
		return nil, newValidationError(CodeInvalidPayment, "payment already recorded for this lead")
	}
	return &PaymentCapture{
		LeadID:    lead.ID,
		PayeeName: lead.Name,
		Generator: gen,
		stage:     StageMethodSelection,
		amount:    *amount,
	}, nil
}
