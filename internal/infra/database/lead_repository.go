package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/machinecare-leads/internal/entity"
)

const leadColumns = `
	id, name, phone, email, service, message, pincode, address, amount,
	status, priority, notes, source, created_at, updated_at, marked_done_at,
	payment_method, payment_status, payment_amount, upi_id, payment_date`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Service,
		lead.Message,
		lead.Pincode,
		lead.Address,
		lead.Amount,
		string(lead.Status),
		string(lead.Priority),
		lead.Notes,
		lead.Source,
		lead.CreatedAt,
		lead.UpdatedAt,
		lead.MarkedDoneAt,
		string(lead.PaymentMethod),
		string(lead.PaymentStatus),
		lead.PaymentAmount,
		lead.UPIID,
		lead.PaymentDate,
	)
	if err != nil {
		log.Printf("❌ Erro ao inserir lead %s: %v", lead.ID, err)
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

// List devolve os leads mais novos primeiro.
func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CreatedFrom != nil {
		conds = append(conds, "created_at >= "+arg(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		conds = append(conds, "created_at < "+arg(*filter.CreatedTo))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(string(filter.Status)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		p := arg("%" + escapeLike(term) + "%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE %[1]s OR phone ILIKE %[1]s OR COALESCE(email, '') ILIKE %[1]s OR service ILIKE %[1]s)", p))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// Update regrava todas as colunas mutáveis: última escrita vence.
func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, phone = $3, email = $4, service = $5, message = $6,
			pincode = $7, address = $8, amount = $9, status = $10, priority = $11,
			notes = $12, source = $13, updated_at = $14, marked_done_at = $15,
			payment_method = $16, payment_status = $17, payment_amount = $18,
			upi_id = $19, payment_date = $20
		WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Service,
		lead.Message,
		lead.Pincode,
		lead.Address,
		lead.Amount,
		string(lead.Status),
		string(lead.Priority),
		lead.Notes,
		lead.Source,
		lead.UpdatedAt,
		lead.MarkedDoneAt,
		string(lead.PaymentMethod),
		string(lead.PaymentStatus),
		lead.PaymentAmount,
		lead.UPIID,
		lead.PaymentDate,
	)
	if err != nil {
		if isInvalidID(err) {
			return entity.ErrLeadNotFound
		}
		log.Printf("❌ Erro ao atualizar lead %s: %v", lead.ID, err)
		return fmt.Errorf("update lead: %w", err)
	}
	return expectOneRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("delete lead: %w", err)
	}
	return expectOneRow(res)
}

// Stats calcula o painel numa única consulta com as janelas em UTC.
func (r *LeadRepository) Stats(ctx context.Context, now time.Time) (*entity.LeadStats, error) {
	dayStart := entity.StartOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)
	weekStart := entity.WeekStart(now)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1 AND created_at < $2),
			COUNT(*) FILTER (WHERE created_at >= $3),
			COUNT(*) FILTER (WHERE status = 'done'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE payment_status = 'completed'),
			COALESCE(SUM(payment_amount) FILTER (WHERE payment_status = 'completed')
				/ NULLIF(COUNT(*) FILTER (WHERE payment_status = 'completed'), 0), 0)::float8,
			COALESCE(SUM(payment_amount) FILTER (WHERE payment_status = 'completed'), 0)::float8,
			COALESCE(SUM(amount) FILTER (WHERE payment_status <> 'completed'), 0)::float8
		FROM leads`

	var s entity.LeadStats
	err := r.DB.QueryRowContext(ctx, query, dayStart, dayEnd, weekStart).Scan(
		&s.TotalLeads,
		&s.TodayLeads,
		&s.ThisWeekLeads,
		&s.CompletedLeads,
		&s.PendingLeads,
		&s.PaidLeads,
		&s.AvgPaymentAmount,
		&s.TotalRevenue,
		&s.PendingRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l                                          entity.Lead
		email, notes, source, upiID                sql.NullString
		amount, paymentAmount                      sql.NullFloat64
		markedDoneAt, paymentDate                  sql.NullTime
		status, priority, paymentMethod, paymentSt string
	)

	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Phone,
		&email,
		&l.Service,
		&l.Message,
		&l.Pincode,
		&l.Address,
		&amount,
		&status,
		&priority,
		&notes,
		&source,
		&l.CreatedAt,
		&l.UpdatedAt,
		&markedDoneAt,
		&paymentMethod,
		&paymentSt,
		&paymentAmount,
		&upiID,
		&paymentDate,
	)
	if err != nil {
		return nil, err
	}

	l.Status = entity.LeadStatus(status)
	l.Priority = entity.LeadPriority(priority)
	l.PaymentMethod = entity.PaymentMethod(paymentMethod)
	l.PaymentStatus = entity.PaymentStatus(paymentSt)
	l.Email = stringPtr(email)
	l.Notes = stringPtr(notes)
	l.Source = stringPtr(source)
	l.UPIID = stringPtr(upiID)
	l.Amount = floatPtr(amount)
	l.PaymentAmount = floatPtr(paymentAmount)
	l.MarkedDoneAt = timePtr(markedDoneAt)
	l.PaymentDate = timePtr(paymentDate)

	return &l, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// isInvalidID: 22P02 é o uuid malformado, que para o painel é "não existe".
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
