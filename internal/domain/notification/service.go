package notification

import (
	"context"
	"fmt"
	"log"
)

// Service contains the business logic for push notification operations.
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. messenger may be nil,
// in which case sends are silently skipped.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers a device token for the authenticated user.
// If the token already belongs to another user, it is reassigned.
func (s *Service) RegisterDevice(ctx context.Context, params RegisterDeviceParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	token, err := s.repo.UpsertDeviceToken(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	return token, nil
}

// NotifyOverdue pushes an overdue-installments alert to every active
// device of the user. A missing messenger or an FCM failure never fails
// the caller.
func (s *Service) NotifyOverdue(ctx context.Context, userID int64, overdueCount int64) error {
	if overdueCount <= 0 {
		return nil
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch device tokens: %w", err)
	}
	if len(tokens) == 0 || s.messenger == nil {
		return nil
	}

	tokenStrings := make([]string, len(tokens))
	for i, t := range tokens {
		tokenStrings[i] = t.Token
	}

	title := "Overdue installments"
	body := fmt.Sprintf("You have %d overdue installment(s). Open the app to review them.", overdueCount)
	if overdueCount == 1 {
		body = "You have 1 overdue installment. Open the app to review it."
	}
	data := map[string]string{"route": "installments", "filter": "overdue"}

	if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, data); err != nil {
		log.Printf("Error sending overdue alert to user %d: %v", userID, err)
	}
	return nil
}

// DeactivateToken marks an FCM token as inactive. Wired into the firebase
// client so invalid tokens are cleaned up on send failures.
func (s *Service) DeactivateToken(ctx context.Context, token string) error {
	return s.repo.DeactivateToken(ctx, token)
}
