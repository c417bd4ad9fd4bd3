package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/domain/debit"
)

type DebitRepository struct {
	db *DB
}

func NewDebitRepository(db *DB) *DebitRepository {
	return &DebitRepository{db: db}
}

// CreateLaunch inserts the launch header and its installments in one
// transaction. A failure on any insert rolls everything back.
func (r *DebitRepository) CreateLaunch(ctx context.Context, params debit.CreateParams, plan []debit.InstallmentPlan) (*debit.Launch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO debit_launches
			(user_id, supplier_id, payment_form_id, document_type_id, card_brand_id,
			 total_amount, description, installment_count, launch_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, supplier_id, payment_form_id, document_type_id,
			card_brand_id, total_amount, description, installment_count, launch_date, notes
	`

	var l debit.Launch
	var cardBrandID sql.NullInt64
	var description, notes sql.NullString
	err = tx.QueryRowContext(ctx, headerQuery,
		params.UserID, params.SupplierID, params.PaymentFormID, params.DocumentTypeID,
		params.CardBrandID, params.TotalAmount, params.Description,
		params.InstallmentCount, params.LaunchDate, params.Notes,
	).Scan(
		&l.ID, &l.UserID, &l.SupplierID, &l.PaymentFormID, &l.DocumentTypeID,
		&cardBrandID, &l.TotalAmount, &description, &l.InstallmentCount,
		&l.LaunchDate, &notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create launch: %w", err)
	}
	if cardBrandID.Valid {
		l.CardBrandID = &cardBrandID.Int64
	}
	l.Description = description.String
	if notes.Valid {
		l.Notes = &notes.String
	}

	installmentQuery := `
		INSERT INTO debit_installments (launch_id, number, amount, due_date, status_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, p := range plan {
		if _, err := tx.ExecContext(ctx, installmentQuery,
			l.ID, p.Number, p.Amount, p.DueDate, debit.StatusOpen,
		); err != nil {
			return nil, fmt.Errorf("failed to create installment %d: %w", p.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit launch: %w", err)
	}
	return &l, nil
}

func (r *DebitRepository) ListLaunches(ctx context.Context, userID int64, supplierID *int64) ([]*debit.LaunchView, error) {
	query := `
		SELECT l.id, l.user_id, l.supplier_id, l.payment_form_id, l.document_type_id,
			l.card_brand_id, l.total_amount, l.description, l.installment_count,
			l.launch_date, l.notes,
			s.name, dt.description, pf.description, cb.description
		FROM debit_launches l
		JOIN suppliers s ON s.id = l.supplier_id
		JOIN document_types dt ON dt.id = l.document_type_id
		JOIN payment_forms pf ON pf.id = l.payment_form_id
		LEFT JOIN card_brands cb ON cb.id = l.card_brand_id
		WHERE l.user_id = $1
	`
	args := []any{userID}
	if supplierID != nil {
		query += ` AND l.supplier_id = $2`
		args = append(args, *supplierID)
	}
	query += ` ORDER BY l.launch_date DESC, l.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	defer rows.Close()

	var launches []*debit.LaunchView
	for rows.Next() {
		var v debit.LaunchView
		var cardBrandID sql.NullInt64
		var description, notes, cardBrand sql.NullString
		err := rows.Scan(
			&v.ID, &v.UserID, &v.SupplierID, &v.PaymentFormID, &v.DocumentTypeID,
			&cardBrandID, &v.TotalAmount, &description, &v.InstallmentCount,
			&v.LaunchDate, &notes,
			&v.SupplierName, &v.DocumentType, &v.PaymentForm, &cardBrand,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}
		if cardBrandID.Valid {
			v.CardBrandID = &cardBrandID.Int64
		}
		v.Description = description.String
		if notes.Valid {
			v.Notes = &notes.String
		}
		if cardBrand.Valid {
			v.CardBrand = &cardBrand.String
		}
		launches = append(launches, &v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating launches: %w", err)
	}
	return launches, nil
}

// installmentViewSelect is the shared projection behind every enriched
// installment read.
const installmentViewSelect = `
	SELECT i.id, i.launch_id, i.number, i.amount, i.due_date, i.status_id,
		i.paid_date, i.paid_amount, i.notes,
		l.supplier_id, s.name, dt.description, pf.description, cb.description,
		st.description, COALESCE(st.color, ''),
		COALESCE(l.description, ''), l.total_amount, l.installment_count
	FROM debit_installments i
	JOIN debit_launches l ON l.id = i.launch_id
	JOIN suppliers s ON s.id = l.supplier_id
	JOIN document_types dt ON dt.id = l.document_type_id
	JOIN payment_forms pf ON pf.id = l.payment_form_id
	LEFT JOIN card_brands cb ON cb.id = l.card_brand_id
	JOIN statuses st ON st.id = i.status_id
`

func (r *DebitRepository) ListInstallments(ctx context.Context, userID int64, filter debit.Filter) ([]*debit.InstallmentView, error) {
	query := installmentViewSelect + ` WHERE l.user_id = $1`
	args := []any{userID}
	argIndex := 2

	if filter.SupplierID != nil {
		query += fmt.Sprintf(" AND l.supplier_id = $%d", argIndex)
		args = append(args, *filter.SupplierID)
		argIndex++
	}
	if filter.StatusID != nil {
		query += fmt.Sprintf(" AND i.status_id = $%d", argIndex)
		args = append(args, *filter.StatusID)
		argIndex++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND i.due_date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND i.due_date <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}
	query += ` ORDER BY i.due_date, s.name, i.number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var views []*debit.InstallmentView
	for rows.Next() {
		v, err := scanInstallmentView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installments: %w", err)
	}
	return views, nil
}

func (r *DebitRepository) GetInstallment(ctx context.Context, id, userID int64) (*debit.InstallmentView, error) {
	query := installmentViewSelect + ` WHERE i.id = $1 AND l.user_id = $2`

	v, err := scanInstallmentView(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return v, nil
}

// SweepOverdue runs across all users: an installment past due is overdue
// no matter who is asking.
func (r *DebitRepository) SweepOverdue(ctx context.Context, today time.Time) (int64, error) {
	query := `
		UPDATE debit_installments
		SET status_id = $1
		WHERE status_id = $2 AND due_date < $3
	`

	result, err := r.db.ExecContext(ctx, query, debit.StatusOverdue, debit.StatusOpen, today)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep overdue installments: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

func (r *DebitRepository) OverdueCountsByUser(ctx context.Context) ([]debit.OverdueCount, error) {
	query := `
		SELECT l.user_id, COUNT(*)
		FROM debit_installments i
		JOIN debit_launches l ON l.id = i.launch_id
		WHERE i.status_id = $1
		GROUP BY l.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, debit.StatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue installments: %w", err)
	}
	defer rows.Close()

	var counts []debit.OverdueCount
	for rows.Next() {
		var c debit.OverdueCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan overdue count: %w", err)
		}
		counts = append(counts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overdue counts: %w", err)
	}
	return counts, nil
}

func (r *DebitRepository) Settle(ctx context.Context, id int64, paidDate time.Time, paidAmount decimal.Decimal, notes *string) error {
	query := `
		UPDATE debit_installments
		SET status_id = $1, paid_date = $2, paid_amount = $3, notes = COALESCE($4, notes)
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, debit.StatusPaid, paidDate, paidAmount, notes, id)
	if err != nil {
		return fmt.Errorf("failed to settle installment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return debit.ErrInstallmentNotFound
	}
	return nil
}

func (r *DebitRepository) UpdateInstallment(ctx context.Context, id int64, params debit.UpdateParams) error {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	if params.Amount != nil {
		setClauses = append(setClauses, fmt.Sprintf("amount = $%d", argIndex))
		args = append(args, *params.Amount)
		argIndex++
	}
	if params.DueDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("due_date = $%d", argIndex))
		args = append(args, *params.DueDate)
		argIndex++
	}
	if params.StatusID != nil {
		setClauses = append(setClauses, fmt.Sprintf("status_id = $%d", argIndex))
		args = append(args, *params.StatusID)
		argIndex++
	}
	if params.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argIndex))
		args = append(args, *params.Notes)
		argIndex++
	}

	query := fmt.Sprintf(`UPDATE debit_installments SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return debit.ErrInstallmentNotFound
	}
	return nil
}

func scanInstallmentView(row scanner) (*debit.InstallmentView, error) {
	var v debit.InstallmentView
	var paidDate sql.NullTime
	var paidAmount decimal.NullDecimal
	var notes, cardBrand sql.NullString

	err := row.Scan(
		&v.ID, &v.LaunchID, &v.Number, &v.Amount, &v.DueDate, &v.StatusID,
		&paidDate, &paidAmount, &notes,
		&v.SupplierID, &v.SupplierName, &v.DocumentType, &v.PaymentForm, &cardBrand,
		&v.StatusDescription, &v.StatusColor,
		&v.LaunchDescription, &v.LaunchTotal, &v.LaunchCount,
	)
	if err != nil {
		return nil, err
	}

	if paidDate.Valid {
		v.PaidDate = &paidDate.Time
	}
	if paidAmount.Valid {
		v.PaidAmount = &paidAmount.Decimal
	}
	if notes.Valid {
		v.Notes = &notes.String
	}
	if cardBrand.Valid {
		v.CardBrand = &cardBrand.String
	}
	return &v, nil
}
