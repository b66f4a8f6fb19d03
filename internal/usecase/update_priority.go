package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
)

type UpdateLeadPriorityUseCase struct {
	Repo LeadRepositoryInterface
	Now  func() time.Time
}

func NewUpdateLeadPriorityUseCase(repo LeadRepositoryInterface) *UpdateLeadPriorityUseCase {
	return &UpdateLeadPriorityUseCase{Repo: repo, Now: time.Now}
}

func (uc *UpdateLeadPriorityUseCase) Execute(ctx context.Context, input UpdateLeadPriorityInput) (*entity.Lead, error) {
	priority, err := entity.ParseLeadPriority(input.Priority)
	if err != nil {
		return nil, newValidationError(CodeInvalidPriority, "unknown priority: "+input.Priority)
	}

	lead, err := loadLead(ctx, uc.Repo, input.LeadID)
	if err != nil {
		return nil, err
	}

	if err := lead.SetPriority(priority, uc.Now()); err != nil {
		return nil, domainFailure(err)
	}
	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, storeFailure("update lead priority", lead.ID, err)
	}
	return lead, nil
}
