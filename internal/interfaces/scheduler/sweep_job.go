package scheduler

import (
	"context"
	"fmt"
	"log"

	"contas/internal/domain/debit"
	"contas/internal/domain/notification"
)

// SweepJob moves past-due OPEN installments to OVERDUE across all users and
// pushes an alert to each affected user's devices.
type SweepJob struct {
	debits        *debit.Service
	notifications *notification.Service
}

// NewSweepJob creates the overdue sweep job. notifications may be nil, in
// which case the sweep still runs but no alerts go out.
func NewSweepJob(debits *debit.Service, notifications *notification.Service) *SweepJob {
	return &SweepJob{debits: debits, notifications: notifications}
}

// Execute runs the sweep and then notifies users with overdue installments.
// Notification failures are logged, not returned: the ledger transition is
// the part that must not silently fail.
func (j *SweepJob) Execute(ctx context.Context) error {
	swept, err := j.debits.SweepOverdue(ctx)
	if err != nil {
		return fmt.Errorf("overdue sweep failed: %w", err)
	}

	log.Printf("Overdue sweep: %d installment(s) transitioned", swept)

	if swept == 0 || j.notifications == nil {
		return nil
	}

	counts, err := j.debits.OverdueCountsByUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to count overdue installments: %w", err)
	}

	for _, c := range counts {
		if err := j.notifications.NotifyOverdue(ctx, c.UserID, c.Count); err != nil {
			log.Printf("Failed to notify user %d about overdue installments: %v", c.UserID, err)
		}
	}

	return nil
}

// Name identifies the job in logs and telemetry.
func (j *SweepJob) Name() string {
	return "overdue installment sweep"
}
