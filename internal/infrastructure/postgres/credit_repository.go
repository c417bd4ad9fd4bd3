package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"contas/internal/domain/credit"
)

type CreditRepository struct {
	db *DB
}

func NewCreditRepository(db *DB) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) Create(ctx context.Context, params credit.CreateParams) (*credit.Credit, error) {
	query := `
		INSERT INTO credit_launches (user_id, credit_type_id, amount, description, receipt_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, credit_type_id, amount, description, receipt_date, notes, recorded_at
	`

	var c credit.Credit
	var description, notes sql.NullString
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.CreditTypeID, params.Amount,
		params.Description, params.ReceiptDate, params.Notes,
	).Scan(
		&c.ID, &c.UserID, &c.CreditTypeID, &c.Amount,
		&description, &c.ReceiptDate, &notes, &c.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit: %w", err)
	}
	if description.Valid {
		c.Description = &description.String
	}
	if notes.Valid {
		c.Notes = &notes.String
	}
	return &c, nil
}

func (r *CreditRepository) List(ctx context.Context, userID int64, filter credit.Filter) ([]*credit.CreditView, error) {
	query := `
		SELECT c.id, c.user_id, c.credit_type_id, c.amount, c.description,
			c.receipt_date, c.notes, c.recorded_at, ct.description
		FROM credit_launches c
		JOIN credit_types ct ON ct.id = c.credit_type_id
		WHERE c.user_id = $1
	`
	args := []any{userID}
	argIndex := 2

	if filter.CreditTypeID != nil {
		query += fmt.Sprintf(" AND c.credit_type_id = $%d", argIndex)
		args = append(args, *filter.CreditTypeID)
		argIndex++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND c.receipt_date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND c.receipt_date <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}
	query += ` ORDER BY c.receipt_date DESC, c.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	defer rows.Close()

	var credits []*credit.CreditView
	for rows.Next() {
		v, err := scanCreditView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		credits = append(credits, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credits: %w", err)
	}
	return credits, nil
}

func (r *CreditRepository) GetByID(ctx context.Context, id, userID int64) (*credit.CreditView, error) {
	query := `
		SELECT c.id, c.user_id, c.credit_type_id, c.amount, c.description,
			c.receipt_date, c.notes, c.recorded_at, ct.description
		FROM credit_launches c
		JOIN credit_types ct ON ct.id = c.credit_type_id
		WHERE c.id = $1 AND c.user_id = $2
	`

	v, err := scanCreditView(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credit: %w", err)
	}
	return v, nil
}

func (r *CreditRepository) Update(ctx context.Context, id, userID int64, params credit.UpdateParams) error {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	if params.CreditTypeID != nil {
		setClauses = append(setClauses, fmt.Sprintf("credit_type_id = $%d", argIndex))
		args = append(args, *params.CreditTypeID)
		argIndex++
	}
	if params.Amount != nil {
		setClauses = append(setClauses, fmt.Sprintf("amount = $%d", argIndex))
		args = append(args, *params.Amount)
		argIndex++
	}
	if params.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *params.Description)
		argIndex++
	}
	if params.ReceiptDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("receipt_date = $%d", argIndex))
		args = append(args, *params.ReceiptDate)
		argIndex++
	}
	if params.Notes != nil {
		setClauses = append(setClauses, fmt.Sprintf("notes = $%d", argIndex))
		args = append(args, *params.Notes)
		argIndex++
	}

	query := fmt.Sprintf(`UPDATE credit_launches SET %s WHERE id = $%d AND user_id = $%d`,
		strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update credit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return credit.ErrCreditNotFound
	}
	return nil
}

func (r *CreditRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM credit_launches WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete credit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return credit.ErrCreditNotFound
	}
	return nil
}

func scanCreditView(row scanner) (*credit.CreditView, error) {
	var v credit.CreditView
	var description, notes sql.NullString
	err := row.Scan(
		&v.ID, &v.UserID, &v.CreditTypeID, &v.Amount,
		&description, &v.ReceiptDate, &notes, &v.RecordedAt, &v.CreditType,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		v.Description = &description.String
	}
	if notes.Valid {
		v.Notes = &notes.String
	}
	return &v, nil
}
