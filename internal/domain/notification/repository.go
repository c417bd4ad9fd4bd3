package notification

import "context"

// Repository defines the interface for device token data access.
type Repository interface {
	// UpsertDeviceToken registers a token, reassigning it if it already
	// belongs to another user.
	UpsertDeviceToken(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error)
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateToken(ctx context.Context, token string) error
}
