package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
)

type GetLeadStatsUseCase struct {
	Repo LeadRepositoryInterface
	Now  func() time.Time
}

func NewGetLeadStatsUseCase(repo LeadRepositoryInterface) *GetLeadStatsUseCase {
	return &GetLeadStatsUseCase{Repo: repo, Now: time.Now}
}

func (uc *GetLeadStatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	stats, err := uc.Repo.Stats(ctx, uc.Now())
	if err != nil {
		return nil, &StoreError{Op: "fetch lead stats", Err: err}
	}
	if stats == nil {
		stats = &entity.LeadStats{}
	}

	return &StatsOutput{
		Stats:   stats,
		Display: NewStatsDisplay(stats),
	}, nil
}

func NewStatsDisplay(stats *entity.LeadStats) StatsDisplay {
	if stats == nil {
		return StatsDisplay{
			AvgPaymentAmount: FormatRupees(nil),
			TotalRevenue:     FormatRupees(nil),
			PendingRevenue:   FormatRupees(nil),
		}
	}
	return StatsDisplay{
		AvgPaymentAmount: FormatRupees(&stats.AvgPaymentAmount),
		TotalRevenue:     FormatRupees(&stats.TotalRevenue),
		PendingRevenue:   FormatRupees(&stats.PendingRevenue),
	}
}
