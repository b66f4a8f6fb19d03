package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/machinecare-leads/internal/entity"
	"github.com/xavierca1/machinecare-leads/internal/infra/database"
	"github.com/xavierca1/machinecare-leads/internal/infra/queue"
)

var testNow = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func ptrFloat(v float64) *float64 { return &v }
func ptrString(v string) *string { return &v }

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) Stats(ctx context.Context, now time.Time) (*entity.LeadStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadStats), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, event queue.LeadEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newDetails() entity.ContactDetails {
	return entity.ContactDetails{
		Name:    "Ravi Kumar",
		Phone:   "9876543210",
		Email:   "ravi@example.com",
		Service: "Refrigerator Service",
		Message: "Fridge is not cooling at all",
		Pincode: 273001,
		Address: "12 Golghar Road, Gorakhpur",
	}
}

// seedLead grava um lead pending na store em memória.
func seedLead(t *testing.T, repo *database.MemoryLeadRepository, createdAt time.Time) *entity.Lead {
	t.Helper()
	lead := entity.NewLead(newDetails(), createdAt)
	require.NoError(t, repo.Create(context.Background(), lead))
	return lead
}

// seedDoneLead grava um lead já concluído com preço definido.
func seedDoneLead(t *testing.T, repo *database.MemoryLeadRepository, amount float64) *entity.Lead {
	t.Helper()
	lead := entity.NewLead(newDetails(), testNow.Add(-2*time.Hour))
	require.NoError(t, lead.ApplyStatus(entity.StatusDone, &amount, nil, testNow.Add(-time.Hour)))
	require.NoError(t, repo.Create(context.Background(), lead))
	return lead
}
