package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

// MemoryLeadRepository guarda leads no processo. Usado sem DATABASE_URL e nos testes.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads map[string]*entity.Lead
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{leads: make(map[string]*entity.Lead)}
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if _, err := uuid.Parse(lead.ID); err != nil {
		return fmt.Errorf("insert lead: invalid id %q", lead.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.ID]; exists {
		return fmt.Errorf("insert lead: duplicate id %s", lead.ID)
	}
	r.leads[lead.ID] = cloneLead(lead)
	return nil
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrLeadNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	return cloneLead(lead), nil
}

func (r *MemoryLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	out := []*entity.Lead{}
	for _, l := range r.leads {
		if filter.CreatedFrom != nil && l.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !l.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		out = append(out, cloneLead(l))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[lead.ID]; !ok {
		return entity.ErrLeadNotFound
	}
	r.leads[lead.ID] = cloneLead(lead)
	return nil
}

func (r *MemoryLeadRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return entity.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *MemoryLeadRepository) Stats(ctx context.Context, now time.Time) (*entity.LeadStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entity.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		all = append(all, l)
	}
	return entity.ComputeStats(all, now), nil
}

func matchesSearch(l *entity.Lead, term string) bool {
	fields := []string{l.Name, l.Phone, l.Service}
	if l.Email != nil {
		fields = append(fields, *l.Email)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// cloneLead copia também os ponteiros para o chamador não mexer no estado guardado.
func cloneLead(l *entity.Lead) *entity.Lead {
	c := *l
	c.Email = cloneString(l.Email)
	c.Notes = cloneString(l.Notes)
	c.Source = cloneString(l.Source)
	c.UPIID = cloneString(l.UPIID)
	c.Amount = cloneFloat(l.Amount)
	c.PaymentAmount = cloneFloat(l.PaymentAmount)
	c.MarkedDoneAt = cloneTime(l.MarkedDoneAt)
	c.PaymentDate = cloneTime(l.PaymentDate)
	return &c
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
