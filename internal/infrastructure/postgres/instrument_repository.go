package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"contas/internal/domain/instrument"
)

type InstrumentRepository struct {
	db *DB
}

func NewInstrumentRepository(db *DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

func (r *InstrumentRepository) Create(ctx context.Context, params instrument.CreateParams) (*instrument.Instrument, error) {
	query := `
		INSERT INTO payment_instruments (user_id, kind, bank, brand, last_four)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, kind, bank, brand, last_four, active, created_at
	`

	inst, err := scanInstrument(r.db.QueryRowContext(ctx, query,
		params.UserID, params.Kind, params.Bank, params.Brand, params.LastFour,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create instrument: %w", err)
	}
	return inst, nil
}

func (r *InstrumentRepository) ListByUserID(ctx context.Context, userID int64) ([]*instrument.Instrument, error) {
	query := `
		SELECT id, user_id, kind, bank, brand, last_four, active, created_at
		FROM payment_instruments
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	defer rows.Close()

	var instruments []*instrument.Instrument
	for rows.Next() {
		inst, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, inst)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}
	return instruments, nil
}

func (r *InstrumentRepository) Deactivate(ctx context.Context, id, userID int64) error {
	query := `UPDATE payment_instruments SET active = FALSE WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate instrument: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return instrument.ErrInstrumentNotFound
	}
	return nil
}

func scanInstrument(row scanner) (*instrument.Instrument, error) {
	var inst instrument.Instrument
	var brand, lastFour sql.NullString
	err := row.Scan(&inst.ID, &inst.UserID, &inst.Kind, &inst.Bank, &brand, &lastFour, &inst.Active, &inst.CreatedAt)
	if err != nil {
		return nil, err
	}
	if brand.Valid {
		inst.Brand = &brand.String
	}
	if lastFour.Valid {
		inst.LastFour = &lastFour.String
	}
	return &inst, nil
}
