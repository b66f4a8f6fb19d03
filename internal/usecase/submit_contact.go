package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

type SubmitContactFormUseCase struct {
	Repo      LeadRepositoryInterface
	Publisher LeadEventPublisher
	Now       func() time.Time
}

func NewSubmitContactFormUseCase(repo LeadRepositoryInterface, publisher LeadEventPublisher) *SubmitContactFormUseCase {
	return &SubmitContactFormUseCase{
		Repo:      repo,
		Publisher: publisher,
		Now:       time.Now,
	}
}

func (uc *SubmitContactFormUseCase) Execute(ctx context.Context, input ContactFormInput) (*entity.Lead, error) {
	if fields := ValidateContactFormInput(input); len(fields) > 0 {
		return nil, newFieldsError(fields)
	}

	now := uc.Now()
	lead := entity.NewLead(entity.ContactDetails{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Service: strings.TrimSpace(input.Service),
		Message: strings.TrimSpace(input.Message),
		Pincode: parsePincode(input.Pincode),
		Address: strings.TrimSpace(input.Address),
	}, now)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		log.Printf("❌ Erro ao gravar lead do formulário: %v", err)
		return nil, &StoreError{Op: "submit contact form", Err: err}
	}

	log.Printf("✅ Novo lead %s (%s, pincode %06d)", lead.ID, lead.Service, lead.Pincode)
	publishEvent(ctx, uc.Publisher, queue.NewLeadEvent(queue.EventLeadCreated, lead, now))

	return lead, nil
}
