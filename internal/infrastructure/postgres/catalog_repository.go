package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"contas/internal/domain/catalog"
)

type CatalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListPaymentForms(ctx context.Context) ([]*catalog.PaymentForm, error) {
	query := `SELECT id, description, active FROM payment_forms WHERE active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment forms: %w", err)
	}
	defer rows.Close()

	var forms []*catalog.PaymentForm
	for rows.Next() {
		var f catalog.PaymentForm
		if err := rows.Scan(&f.ID, &f.Description, &f.Active); err != nil {
			return nil, fmt.Errorf("failed to scan payment form: %w", err)
		}
		forms = append(forms, &f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment forms: %w", err)
	}
	return forms, nil
}

func (r *CatalogRepository) ListDocumentTypes(ctx context.Context) ([]*catalog.DocumentType, error) {
	query := `
		SELECT id, description, requires_card_brand, allows_installments, active
		FROM document_types
		WHERE active = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list document types: %w", err)
	}
	defer rows.Close()

	var types []*catalog.DocumentType
	for rows.Next() {
		var t catalog.DocumentType
		if err := rows.Scan(&t.ID, &t.Description, &t.RequiresCardBrand, &t.AllowsInstallments, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan document type: %w", err)
		}
		types = append(types, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document types: %w", err)
	}
	return types, nil
}

func (r *CatalogRepository) GetDocumentType(ctx context.Context, id int64) (*catalog.DocumentType, error) {
	query := `
		SELECT id, description, requires_card_brand, allows_installments, active
		FROM document_types
		WHERE id = $1
	`

	var t catalog.DocumentType
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Description, &t.RequiresCardBrand, &t.AllowsInstallments, &t.Active,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document type: %w", err)
	}
	return &t, nil
}

func (r *CatalogRepository) ListCardBrands(ctx context.Context) ([]*catalog.CardBrand, error) {
	query := `SELECT id, description, active FROM card_brands WHERE active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list card brands: %w", err)
	}
	defer rows.Close()

	var brands []*catalog.CardBrand
	for rows.Next() {
		var b catalog.CardBrand
		if err := rows.Scan(&b.ID, &b.Description, &b.Active); err != nil {
			return nil, fmt.Errorf("failed to scan card brand: %w", err)
		}
		brands = append(brands, &b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card brands: %w", err)
	}
	return brands, nil
}

func (r *CatalogRepository) ListStatuses(ctx context.Context) ([]*catalog.Status, error) {
	query := `SELECT id, description, COALESCE(color, '') FROM statuses ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*catalog.Status
	for rows.Next() {
		var s catalog.Status
		if err := rows.Scan(&s.ID, &s.Description, &s.Color); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statuses: %w", err)
	}
	return statuses, nil
}

func (r *CatalogRepository) ListCreditTypes(ctx context.Context) ([]*catalog.CreditType, error) {
	query := `SELECT id, description, active FROM credit_types WHERE active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit types: %w", err)
	}
	defer rows.Close()

	var types []*catalog.CreditType
	for rows.Next() {
		var t catalog.CreditType
		if err := rows.Scan(&t.ID, &t.Description, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan credit type: %w", err)
		}
		types = append(types, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit types: %w", err)
	}
	return types, nil
}
