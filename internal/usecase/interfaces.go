package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/integration/upiqr"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

type LeadRepositoryInterface = entity.LeadRepositoryInterface

type LeadEventPublisher interface {
	PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error
}

type QRGenerator interface {
	Generate(input upiqr.GenerateInput) (*upiqr.QRCode, error)
}

// publishEvent nunca falha a operação: a mutação já foi gravada.
func publishEvent(ctx context.Context, publisher LeadEventPublisher, event queue.LeadEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishLeadEvent(ctx, event); err != nil {
		log.Printf("⚠️ Lead %s gravado, mas falhou ao publicar %s: %v", event.LeadID, event.Type, err)
	}
}
