package usecase

import (
	"context"
	"time"
)

type UpdateLeadAmountUseCase struct {
	Repo LeadRepositoryInterface
	Now  func() time.Time
}

func NewUpdateLeadAmountUseCase(repo LeadRepositoryInterface) *UpdateLeadAmountUseCase {
	return &UpdateLeadAmountUseCase{Repo: repo, Now: time.Now}
}

// Execute grava o preço do serviço. Repetir o mesmo valor é inofensivo.
func (uc *UpdateLeadAmountUseCase) Execute(ctx context.Context, input UpdateLeadAmountInput) (*LeadDetailOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	lead, err := loadLead(ctx, uc.Repo, input.LeadID)
	if err != nil {
		return nil, err
	}

	lead.SetAmount(input.Amount, uc.Now())
	if err := uc.Repo.Update(ctx, lead); err != nil {
		return nil, storeFailure("update lead amount", lead.ID, err)
	}

	return &LeadDetailOutput{
		Lead:              lead,
		Links:             lead.Links(),
		CanCollectPayment: lead.CanCollectPayment(),
	}, nil
}
