package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

type RecordPaymentUseCase struct {
	Repo      LeadRepositoryInterface
	Publisher LeadEventPublisher
	Now       func() time.Time
}

func NewRecordPaymentUseCase(repo LeadRepositoryInterface, publisher LeadEventPublisher) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		Repo:      repo,
		Publisher: publisher,
		Now:       time.Now,
	}
}

// Execute valida o registro antes de tocar na store.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, rec entity.PaymentRecord) (*entity.Lead, error) {
	if err := rec.Validate(); err != nil {
		return nil, domainFailure(err)
	}

	lead, err := loadLead(ctx, uc.Repo, rec.LeadID)
	if err != nil {
		return nil, err
	}

	now := uc.Now()
	if err := lead.RecordPayment(rec, now); err != nil {
		return nil, domainFailure(err)
	}
	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, storeFailure("record payment", lead.ID, err)
	}

	log.Printf("💰 Pagamento %s de %.2f registrado no lead %s", rec.PaymentMethod, rec.PaymentAmount, lead.ID)
	publishEvent(ctx, uc.Publisher, queue.NewLeadEvent(queue.EventPaymentRecorded, lead, now))

	return lead, nil
}
