package entity

import "time"

// LeadStats é a visão agregada do painel.
type LeadStats struct {
	TotalLeads       int     `json:"total_leads"`
	TodayLeads       int     `json:"today_leads"`
	ThisWeekLeads    int     `json:"this_week_leads"`
	CompletedLeads   int     `json:"completed_leads"`
	PendingLeads     int     `json:"pending_leads"`
	PaidLeads        int     `json:"paid_leads"`
	AvgPaymentAmount float64 `json:"avg_payment_amount"`
	TotalRevenue     float64 `json:"total_revenue"`
	PendingRevenue   float64 `json:"pending_revenue"`
}

// StartOfDay devolve 00:00 UTC do dia de t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart é a janela móvel de 7 dias usada em this_week_leads.
func WeekStart(now time.Time) time.Time {
	return now.UTC().Add(-7 * 24 * time.Hour)
}

// ComputeStats agrega em memória com a mesma semântica da query do Postgres.
func ComputeStats(leads []*Lead, now time.Time) *LeadStats {
	stats := &LeadStats{}
	dayStart := StartOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)
	weekStart := WeekStart(now)

	for _, l := range leads {
		stats.TotalLeads++

		created := l.CreatedAt.UTC()
		if !created.Before(dayStart) && created.Before(dayEnd) {
			stats.TodayLeads++
		}
		if !created.Before(weekStart) {
			stats.ThisWeekLeads++
		}

		switch l.Status {
		case StatusDone:
			stats.CompletedLeads++
		case StatusPending:
			stats.PendingLeads++
		}

		if l.PaymentStatus == PaymentStatusCompleted {
			stats.PaidLeads++
			if l.PaymentAmount != nil {
				stats.TotalRevenue += *l.PaymentAmount
			}
		} else if l.Amount != nil {
			stats.PendingRevenue += *l.Amount
		}
	}

	if stats.PaidLeads > 0 {
		stats.AvgPaymentAmount = stats.TotalRevenue / float64(stats.PaidLeads)
	}

	return stats
}
