package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Repo LeadRepositoryInterface
	Now  func() time.Time
}

func NewListLeadsUseCase(repo LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo, Now: time.Now}
}

// Execute lista mais novos primeiro. today/previous cortam no início do dia UTC.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) ([]*entity.Lead, error) {
	filter := entity.LeadFilter{Search: strings.TrimSpace(input.Search)}

	if raw := strings.TrimSpace(input.Status); raw != "" && raw != "all" {
		status, err := entity.ParseLeadStatus(raw)
		if err != nil {
			return nil, newValidationError(CodeInvalidStatus, "unknown status filter: "+raw)
		}
		filter.Status = status
	}

	dayStart := entity.StartOfDay(uc.Now())
	dayEnd := dayStart.Add(24 * time.Hour)

	switch input.View {
	case ViewToday:
		filter.CreatedFrom = &dayStart
		filter.CreatedTo = &dayEnd
	case ViewPrevious:
		filter.CreatedTo = &dayStart
	case ViewAll, "":
	default:
		return nil, newValidationError(CodeValidation, "view must be today, previous or all")
	}

	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, &StoreError{Op: "fetch leads", Err: err}
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}
