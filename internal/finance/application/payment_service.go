package application

import (
	"context"
	"errors"

	finance "practice-cloud/internal/finance/domain"
)

// PaymentService applies payment confirmations to the session store.
type PaymentService struct {
	store SessionStore
}

// NewPaymentService constructs the service.
func NewPaymentService(store SessionStore) (*PaymentService, error) {
	if store == nil {
		return nil, errors.New("payment service: nil session store")
	}
	return &PaymentService{store: store}, nil
}

// Confirm applies a batch of payment confirmations and returns how many
// sessions actually changed. Confirmations that land on an already paid
// session are skipped by the store's guard and do not count; the caller
// compares applied against len(confirmations) to report partial runs.
func (s *PaymentService) Confirm(ctx context.Context, confirmations []finance.PaymentConfirmation) (int, error) {
	applied := 0
	for _, c := range confirmations {
		if err := c.Validate(); err != nil {
			return applied, err
		}
		changed, err := s.store.MarkPaid(ctx, c.SessionID, c.PaymentDate)
		if err != nil {
			return applied, err
		}
		if changed {
			applied++
		}
	}
	return applied, nil
}

// Revert clears the paid flag and payment date of one session. Reverting
// an unpaid session is a no-op, not an error.
func (s *PaymentService) Revert(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return finance.ErrEmptySessionID
	}
	_, err := s.store.RevertPayment(ctx, sessionID)
	return err
}
