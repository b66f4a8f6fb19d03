package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

// TestIsInvalidID - só o 22P02 do Postgres conta como id malformado
func TestIsInvalidID(t *testing.T) {
	assert.True(t, isInvalidID(&pq.Error{Code: "22P02"}))
	assert.True(t, isInvalidID(fmt.Errorf("find lead: %w", &pq.Error{Code: "22P02"})))
	assert.False(t, isInvalidID(&pq.Error{Code: "23505"}))
	assert.False(t, isInvalidID(errors.New("22P02")))
}

// TestEscapeLike - curingas digitados na busca são literais
func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "ravi", escapeLike("ravi"))
}

var sqlNow = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

var leadColumnNames = []string{
	"id", "name", "phone", "email", "service", "message", "pincode", "address", "amount",
	"status", "priority", "notes", "source", "created_at", "updated_at", "marked_done_at",
	"payment_method", "payment_status", "payment_amount", "upi_id", "payment_date",
}

func newMockRepo(t *testing.T) (*LeadRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLeadRepository(db), mock
}

func pendingLeadRow(id string) []driver.Value {
	return []driver.Value{
		id, "Ravi Kumar", "9876543210", nil, "AC Service", "AC not cooling", int64(273001),
		"12 Civil Lines, Gorakhpur", 1500.0, "pending", "medium", nil, "website",
		sqlNow, sqlNow, nil, "pending", "pending", nil, nil, nil,
	}
}

// TestStatsQueryWindows - janelas de hoje e da semana iguais às do ComputeStats
func TestStatsQueryWindows(t *testing.T) {
	repo, mock := newMockRepo(t)
	dayStart := entity.StartOfDay(sqlNow)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2)")).
		WithArgs(dayStart, dayStart.Add(24*time.Hour), entity.WeekStart(sqlNow)).
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "today", "week", "completed", "pending", "paid", "avg", "revenue", "pending_revenue",
		}).AddRow(int64(5), int64(2), int64(3), int64(1), int64(2), int64(2), 1250.0, 2500.0, 800.0))

	stats, err := repo.Stats(context.Background(), sqlNow)
	require.NoError(t, err)

	assert.Equal(t, &entity.LeadStats{
		TotalLeads:       5,
		TodayLeads:       2,
		ThisWeekLeads:    3,
		CompletedLeads:   1,
		PendingLeads:     2,
		PaidLeads:        2,
		AvgPaymentAmount: 1250,
		TotalRevenue:     2500,
		PendingRevenue:   800,
	}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestListBuildsFilters - cada filtro vira um placeholder e a busca escapa curingas
func TestListBuildsFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	from := entity.StartOfDay(sqlNow)
	to := from.Add(24 * time.Hour)
	id := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM leads WHERE created_at >= $1 AND created_at < $2 AND status = $3 AND " +
			"(name ILIKE $4 OR phone ILIKE $4 OR COALESCE(email, '') ILIKE $4 OR service ILIKE $4) " +
			"ORDER BY created_at DESC")).
		WithArgs(from, to, "pending", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(leadColumnNames).AddRow(pendingLeadRow(id)...))

	leads, err := repo.List(context.Background(), entity.LeadFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
		Status:      entity.StatusPending,
		Search:      " 50% ",
	})
	require.NoError(t, err)
	require.Len(t, leads, 1)

	l := leads[0]
	assert.Equal(t, id, l.ID)
	assert.Equal(t, 273001, l.Pincode)
	assert.Nil(t, l.Email)
	require.NotNil(t, l.Amount)
	assert.Equal(t, 1500.0, *l.Amount)
	require.NotNil(t, l.Source)
	assert.Equal(t, "website", *l.Source)
	assert.Nil(t, l.MarkedDoneAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestListWithoutFilters - sem filtro não há WHERE e o resultado vazio não é nil
func TestListWithoutFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(leadColumnNames))

	leads, err := repo.List(context.Background(), entity.LeadFilter{})
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestFindByIDNotFound - sem linha e uuid malformado viram ErrLeadNotFound
func TestFindByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(leadColumnNames))
	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02"})

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	_, err = repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateAndDeleteExpectOneRow - zero linhas afetadas é ErrLeadNotFound
func TestUpdateAndDeleteExpectOneRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	lead := &entity.Lead{ID: uuid.NewString(), Status: entity.StatusPending, UpdatedAt: sqlNow}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads WHERE id = $1")).
		WithArgs(lead.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leads WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02"})

	assert.ErrorIs(t, repo.Update(context.Background(), lead), entity.ErrLeadNotFound)
	assert.NoError(t, repo.Update(context.Background(), lead))
	assert.ErrorIs(t, repo.Delete(context.Background(), lead.ID), entity.ErrLeadNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "not-a-uuid"), entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestStoreErrorsAreWrapped - falha do driver sobe embrulhada, não como not found
func TestStoreErrorsAreWrapped(t *testing.T) {
	repo, mock := newMockRepo(t)
	cause := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE id = $1")).WillReturnError(cause)

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
