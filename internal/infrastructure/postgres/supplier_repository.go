package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"contas/internal/domain/supplier"
)

type SupplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(ctx context.Context, params supplier.CreateParams) (*supplier.Supplier, error) {
	query := `
		INSERT INTO suppliers (user_id, name, tax_id, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, tax_id, phone, email, active, created_at
	`

	s, err := scanSupplier(r.db.QueryRowContext(ctx, query,
		params.UserID, params.Name, params.TaxID, params.Phone, params.Email,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) ListByUserID(ctx context.Context, userID int64) ([]*supplier.Supplier, error) {
	query := `
		SELECT id, user_id, name, tax_id, phone, email, active, created_at
		FROM suppliers
		WHERE user_id = $1 AND active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*supplier.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id, userID int64) (*supplier.Supplier, error) {
	query := `
		SELECT id, user_id, name, tax_id, phone, email, active, created_at
		FROM suppliers
		WHERE id = $1 AND user_id = $2
	`

	s, err := scanSupplier(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) Update(ctx context.Context, id, userID int64, params supplier.UpdateParams) (*supplier.Supplier, error) {
	setClauses := []string{}
	args := []any{}
	argIndex := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *params.Name)
		argIndex++
	}
	if params.TaxID != nil {
		setClauses = append(setClauses, fmt.Sprintf("tax_id = $%d", argIndex))
		args = append(args, *params.TaxID)
		argIndex++
	}
	if params.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argIndex))
		args = append(args, *params.Phone)
		argIndex++
	}
	if params.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, *params.Email)
		argIndex++
	}
	if params.Active != nil {
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", argIndex))
		args = append(args, *params.Active)
		argIndex++
	}

	query := fmt.Sprintf(`
		UPDATE suppliers
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, user_id, name, tax_id, phone, email, active, created_at
	`, strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, userID)

	s, err := scanSupplier(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, supplier.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) Deactivate(ctx context.Context, id, userID int64) error {
	query := `UPDATE suppliers SET active = FALSE WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate supplier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return supplier.ErrSupplierNotFound
	}
	return nil
}

// scanner covers both *sql.Rows and the traced row wrapper.
type scanner interface {
	Scan(dest ...any) error
}

func scanSupplier(row scanner) (*supplier.Supplier, error) {
	var s supplier.Supplier
	var taxID, phone, email sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &taxID, &phone, &email, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if taxID.Valid {
		s.TaxID = &taxID.String
	}
	if phone.Valid {
		s.Phone = &phone.String
	}
	if email.Valid {
		s.Email = &email.String
	}
	return &s, nil
}
