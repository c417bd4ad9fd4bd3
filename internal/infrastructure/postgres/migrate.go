package postgres

import (
	"context"
	"fmt"
	"log"
)

// Schema DDL. Every statement is idempotent so Migrate can run on every
// start without coordination.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		username      TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		active        BOOLEAN DEFAULT TRUE,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id         SERIAL PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		name       TEXT NOT NULL,
		tax_id     TEXT,
		phone      TEXT,
		email      TEXT,
		active     BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payment_forms (
		id          SERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		active      BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS document_types (
		id                  SERIAL PRIMARY KEY,
		description         TEXT NOT NULL,
		requires_card_brand BOOLEAN DEFAULT FALSE,
		allows_installments BOOLEAN DEFAULT FALSE,
		active              BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS card_brands (
		id          SERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		active      BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		id          SERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		color       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS credit_types (
		id          SERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		active      BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS debit_launches (
		id                SERIAL PRIMARY KEY,
		user_id           INTEGER NOT NULL REFERENCES users(id),
		supplier_id       INTEGER NOT NULL REFERENCES suppliers(id),
		payment_form_id   INTEGER NOT NULL REFERENCES payment_forms(id),
		document_type_id  INTEGER NOT NULL REFERENCES document_types(id),
		card_brand_id     INTEGER REFERENCES card_brands(id),
		total_amount      NUMERIC(10,2) NOT NULL,
		description       TEXT,
		installment_count INTEGER DEFAULT 1,
		launch_date       DATE NOT NULL,
		notes             TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS debit_installments (
		id          SERIAL PRIMARY KEY,
		launch_id   INTEGER NOT NULL REFERENCES debit_launches(id),
		number      INTEGER NOT NULL,
		amount      NUMERIC(10,2) NOT NULL,
		due_date    DATE NOT NULL,
		status_id   INTEGER DEFAULT 1 REFERENCES statuses(id),
		paid_date   DATE,
		paid_amount NUMERIC(10,2),
		notes       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS credit_launches (
		id             SERIAL PRIMARY KEY,
		user_id        INTEGER NOT NULL REFERENCES users(id),
		credit_type_id INTEGER NOT NULL REFERENCES credit_types(id),
		amount         NUMERIC(10,2) NOT NULL,
		description    TEXT,
		receipt_date   DATE NOT NULL,
		notes          TEXT,
		recorded_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payment_instruments (
		id         SERIAL PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		kind       TEXT NOT NULL,
		bank       TEXT NOT NULL,
		brand      TEXT,
		last_four  TEXT,
		active     BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_devices (
		id          SERIAL PRIMARY KEY,
		user_id     INTEGER NOT NULL REFERENCES users(id),
		token       TEXT UNIQUE NOT NULL,
		device_type TEXT NOT NULL,
		active      BOOLEAN DEFAULT TRUE,
		created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_used   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_installments_due_status
		ON debit_installments (status_id, due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_installments_launch
		ON debit_installments (launch_id)`,
	`CREATE INDEX IF NOT EXISTS idx_launches_user
		ON debit_launches (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_credits_user_date
		ON credit_launches (user_id, receipt_date)`,
}

// Migrate creates the schema and seeds the lookup tables when they are
// empty. Statuses keep fixed ids because the sweep and settlement paths
// reference them as literals.
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	if err := seedReferenceData(ctx, db); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	log.Println("Database schema up to date")
	return nil
}

func seedReferenceData(ctx context.Context, db *DB) error {
	type seed struct {
		table string
		query string
	}

	seeds := []seed{
		{"payment_forms", `INSERT INTO payment_forms (description) VALUES
			('Cash'), ('Installment')`},
		{"document_types", `INSERT INTO document_types (description, requires_card_brand, allows_installments) VALUES
			('Payment Booklet', FALSE, TRUE),
			('Promissory Note', FALSE, TRUE),
			('Bank Slip', FALSE, TRUE),
			('Credit Card', TRUE, TRUE),
			('Debit Card', TRUE, FALSE),
			('Cash', FALSE, FALSE),
			('PIX', FALSE, FALSE),
			('Financing', FALSE, TRUE)`},
		{"card_brands", `INSERT INTO card_brands (description) VALUES
			('Visa'), ('Mastercard'), ('Elo'), ('American Express'), ('Hipercard')`},
		{"statuses", `INSERT INTO statuses (id, description, color) VALUES
			(1, 'Open', '#FFA500'),
			(2, 'Paid', '#28A745'),
			(3, 'Overdue', '#DC3545'),
			(4, 'Cancelled', '#6C757D')`},
		{"credit_types", `INSERT INTO credit_types (description) VALUES
			('Salary'), ('Bonus'), ('13th Salary'), ('Vacation'), ('Other')`},
	}

	for _, s := range seeds {
		var count int
		if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count %s: %w", s.table, err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, s.query); err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.table, err)
		}
	}

	// Keep the sequence ahead of the fixed status ids.
	if _, err := db.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('statuses', 'id'), GREATEST((SELECT MAX(id) FROM statuses), 1))`); err != nil {
		return fmt.Errorf("failed to advance statuses sequence: %w", err)
	}

	return nil
}
