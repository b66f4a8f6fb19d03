package database

import (
	"database/sql"
	"log"
)

// RunMigrations cria a tabela de leads e os índices do painel, se faltarem.
func RunMigrations(db *sql.DB) error {
	log.Println("🛠️ Rodando migrations...")

	if err := createLeadsTable(db); err != nil {
		return err
	}
	if err := createLeadIndexes(db); err != nil {
		return err
	}

	log.Println("✅ Migrations concluídas")
	return nil
}

func createLeadsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS leads (
			id              UUID PRIMARY KEY,
			name            TEXT NOT NULL,
			phone           TEXT NOT NULL,
			email           TEXT,
			service         TEXT NOT NULL,
			message         TEXT NOT NULL,
			pincode         INTEGER NOT NULL,
			address         TEXT NOT NULL,
			amount          NUMERIC(12,2),
			status          TEXT NOT NULL DEFAULT 'pending',
			priority        TEXT NOT NULL DEFAULT 'medium',
			notes           TEXT,
			source          TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			marked_done_at  TIMESTAMPTZ,
			payment_method  TEXT NOT NULL DEFAULT 'pending',
			payment_status  TEXT NOT NULL DEFAULT 'pending',
			payment_amount  NUMERIC(12,2),
			upi_id          TEXT,
			payment_date    TIMESTAMPTZ,
			CONSTRAINT leads_status_check CHECK (status IN ('pending','contacted','qualified','converted','rejected','done')),
			CONSTRAINT leads_priority_check CHECK (priority IN ('low','medium','high','urgent')),
			CONSTRAINT leads_payment_method_check CHECK (payment_method IN ('cash','online','pending')),
			CONSTRAINT leads_payment_status_check CHECK (payment_status IN ('pending','completed','failed')),
			CONSTRAINT leads_payment_completed_check CHECK (
				payment_status <> 'completed'
				OR (payment_amount > 0 AND payment_method IN ('cash','online'))
			)
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("❌ Falha ao criar tabela leads: %v", err)
		return err
	}
	return nil
}

func createLeadIndexes(db *sql.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_payment_status ON leads (payment_status)`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("❌ Falha ao criar índice: %v", err)
			return err
		}
	}
	return nil
}
