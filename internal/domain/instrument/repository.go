package instrument

import "context"

// Repository defines the interface for payment instrument data access.
type Repository interface {
	// Create registers a new instrument for a user.
	Create(ctx context.Context, params CreateParams) (*Instrument, error)

	// ListByUserID retrieves all instruments of a user, newest first.
	ListByUserID(ctx context.Context, userID int64) ([]*Instrument, error)

	// Deactivate soft-deletes an instrument scoped to the owner.
	Deactivate(ctx context.Context, id, userID int64) error
}
