package postgres

import (
	"context"
	"fmt"
	"time"

	"contas/internal/domain/debit"
	"contas/internal/domain/report"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Statement unions credit receipts and installment due-events, sorted by
// date with credits first on ties. The running balance column is computed
// by the service over this ordering.
func (r *ReportRepository) Statement(ctx context.Context, userID int64, from, to time.Time) ([]*report.StatementEntry, error) {
	query := `
		SELECT entry_date, kind, description, amount FROM (
			SELECT c.receipt_date AS entry_date,
				'CREDIT' AS kind,
				COALESCE(NULLIF(c.description, ''), ct.description) AS description,
				c.amount AS amount
			FROM credit_launches c
			JOIN credit_types ct ON ct.id = c.credit_type_id
			WHERE c.user_id = $1 AND c.receipt_date >= $2 AND c.receipt_date <= $3

			UNION ALL

			SELECT i.due_date AS entry_date,
				'DEBIT' AS kind,
				s.name || ' — ' || COALESCE(NULLIF(l.description, ''), dt.description)
					|| ' (' || i.number || '/' || l.installment_count || ')' AS description,
				i.amount AS amount
			FROM debit_installments i
			JOIN debit_launches l ON l.id = i.launch_id
			JOIN suppliers s ON s.id = l.supplier_id
			JOIN document_types dt ON dt.id = l.document_type_id
			WHERE l.user_id = $1 AND i.due_date >= $2 AND i.due_date <= $3
		) entries
		ORDER BY entry_date, CASE WHEN kind = 'CREDIT' THEN 0 ELSE 1 END
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement: %w", err)
	}
	defer rows.Close()

	var entries []*report.StatementEntry
	for rows.Next() {
		var e report.StatementEntry
		if err := rows.Scan(&e.Date, &e.Kind, &e.Description, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan statement entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement entries: %w", err)
	}
	return entries, nil
}

// PeriodTotals aggregates the window for the dashboard. Debits are summed
// by due date; the paid total uses the actual paid amount when recorded.
func (r *ReportRepository) PeriodTotals(ctx context.Context, userID int64, from, to time.Time) (*report.PeriodSummary, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(c.amount)
				FROM credit_launches c
				WHERE c.user_id = $1 AND c.receipt_date >= $2 AND c.receipt_date <= $3), 0),
			COALESCE(SUM(i.amount), 0),
			COALESCE(SUM(CASE WHEN i.status_id IN ($4, $5) THEN i.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.status_id = $6 THEN COALESCE(i.paid_amount, i.amount) ELSE 0 END), 0)
		FROM debit_installments i
		JOIN debit_launches l ON l.id = i.launch_id
		WHERE l.user_id = $1 AND i.due_date >= $2 AND i.due_date <= $3
	`

	var summary report.PeriodSummary
	err := r.db.QueryRowContext(ctx, query, userID, from, to,
		debit.StatusOpen, debit.StatusOverdue, debit.StatusPaid,
	).Scan(
		&summary.Credits, &summary.Debits, &summary.DebitsOpen, &summary.DebitsPaid,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query period totals: %w", err)
	}
	return &summary, nil
}
