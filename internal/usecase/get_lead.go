package usecase

import (
	"context"

	"github.com/xavierca1/machinecare-leads/internal/entity"
)

type GetLeadUseCase struct {
	Repo LeadRepositoryInterface
}

func NewGetLeadUseCase(repo LeadRepositoryInterface) *GetLeadUseCase {
	return &GetLeadUseCase{Repo: repo}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, leadID string) (*LeadDetailOutput, error) {
	lead, err := loadLead(ctx, uc.Repo, leadID)
	if err != nil {
		return nil, err
	}

	return &LeadDetailOutput{
		Lead:              lead,
		Links:             lead.Links(),
		CanCollectPayment: lead.CanCollectPayment(),
	}, nil
}

// loadLead é o "read" do read-modify-write de todas as mutações.
func loadLead(ctx context.Context, repo LeadRepositoryInterface, leadID string) (*entity.Lead, error) {
	if leadID == "" {
		return nil, &NotFoundError{LeadID: leadID}
	}
	lead, err := repo.FindByID(ctx, leadID)
	if err != nil {
		return nil, storeFailure("load lead", leadID, err)
	}
	return lead, nil
}
