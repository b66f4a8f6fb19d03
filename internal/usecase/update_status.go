package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

type UpdateLeadStatusUseCase struct {
	Repo      LeadRepositoryInterface
	Publisher LeadEventPublisher
	Now       func() time.Time
}

func NewUpdateLeadStatusUseCase(repo LeadRepositoryInterface, publisher LeadEventPublisher) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{
		Repo:      repo,
		Publisher: publisher,
		Now:       time.Now,
	}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, input UpdateLeadStatusInput) (*UpdateLeadStatusOutput, error) {
	status, err := entity.ParseLeadStatus(input.Status)
	if err != nil {
		return nil, newValidationError(CodeInvalidStatus, "unknown status: "+input.Status)
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	lead, err := loadLead(ctx, uc.Repo, input.LeadID)
	if err != nil {
		return nil, err
	}

	from := lead.Status
	now := uc.Now()
	if err := lead.ApplyStatus(status, input.Amount, input.Notes, now); err != nil {
		return nil, domainFailure(err)
	}

	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, storeFailure("update lead status", lead.ID, err)
	}

	log.Printf("🔄 Lead %s: %s -> %s", lead.ID, from, lead.Status)
	publishEvent(ctx, uc.Publisher, queue.NewLeadEvent(queue.EventLeadStatusChanged, lead, now))

	return &UpdateLeadStatusOutput{
		Lead:           lead,
		AmountRequired: lead.NeedsAmount(),
	}, nil
}
