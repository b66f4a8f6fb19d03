package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

type DeleteLeadUseCase struct {
	Repo      LeadRepositoryInterface
	Publisher LeadEventPublisher
	Now       func() time.Time
}

func NewDeleteLeadUseCase(repo LeadRepositoryInterface, publisher LeadEventPublisher) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{
		Repo:      repo,
		Publisher: publisher,
		Now:       time.Now,
	}
}

// Execute apaga de vez. Não existe lixeira.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, leadID string) error {
	if leadID == "" {
		return &NotFoundError{LeadID: leadID}
	}
	if err := uc.Repo.Delete(ctx, leadID); err != nil {
		return storeFailure("delete lead", leadID, err)
	}

	log.Printf("🗑️ Lead %s removido", leadID)
	publishEvent(ctx, uc.Publisher, queue.LeadEvent{
		Type:       queue.EventLeadDeleted,
		LeadID:     leadID,
		OccurredAt: uc.Now(),
	})
	return nil
}
