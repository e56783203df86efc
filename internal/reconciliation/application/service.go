package application

import (
	"context"
	"errors"
	"time"

	finapp "practice-cloud/internal/finance/application"
	finance "practice-cloud/internal/finance/domain"
	"practice-cloud/internal/observability/metrics"
	reconciliation "practice-cloud/internal/reconciliation/domain"
)

// ConfirmReport is the outcome of applying a batch of payment
// confirmations: how many were requested and how many actually changed
// a session. Skipped confirmations hit the paid guard, meaning another
// run settled the session first.
type ConfirmReport struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
	Skipped   int `json:"skipped"`
}

// Service runs reconciliation: parse a statement, match its credits
// against unpaid sessions, apply the confirmed proposals.
type Service struct {
	records  finapp.RecordStore
	payments *finapp.PaymentService
}

// NewService constructs the service.
func NewService(records finapp.RecordStore, payments *finapp.PaymentService) (*Service, error) {
	if records == nil {
		return nil, errors.New("reconciliation service: nil record store")
	}
	if payments == nil {
		return nil, errors.New("reconciliation service: nil payment service")
	}
	return &Service{records: records, payments: payments}, nil
}

// Parse extracts credit entries from a raw statement export.
func (s *Service) Parse(text string) ([]reconciliation.Entry, error) {
	entries, err := reconciliation.ParseStatement(text)
	if err != nil {
		metrics.ObserveStatementParse(metrics.ResultError, 0)
		return nil, err
	}
	metrics.ObserveStatementParse(metrics.ResultSuccess, len(entries))
	return entries, nil
}

// Match runs the matcher over the account's current sessions. The
// entries and mapping come from the caller's reconciliation session;
// nothing about the run is persisted.
func (s *Service) Match(ctx context.Context, entries []reconciliation.Entry, mapping map[string]string) (reconciliation.MatchResult, error) {
	started := time.Now()
	sessions, err := s.records.ListSessions(ctx)
	if err != nil {
		metrics.ObserveReconcileRun(metrics.ResultError, 0, time.Since(started))
		return reconciliation.MatchResult{}, err
	}
	result, err := reconciliation.Match(entries, mapping, sessions)
	if err != nil {
		metrics.ObserveReconcileRun(metrics.ResultError, 0, time.Since(started))
		return reconciliation.MatchResult{}, err
	}
	metrics.ObserveReconcileRun(metrics.ResultSuccess, len(result.Proposals), time.Since(started))
	return result, nil
}

// Confirm applies the operator-approved proposals.
func (s *Service) Confirm(ctx context.Context, proposals []finance.PaymentConfirmation) (ConfirmReport, error) {
	applied, err := s.payments.Confirm(ctx, proposals)
	report := ConfirmReport{
		Requested: len(proposals),
		Applied:   applied,
		Skipped:   len(proposals) - applied,
	}
	if err == nil {
		for i := 0; i < report.Applied; i++ {
			metrics.IncPaymentApplication(metrics.PaymentOutcomeApplied)
		}
		for i := 0; i < report.Skipped; i++ {
			metrics.IncPaymentApplication(metrics.PaymentOutcomeSkipped)
		}
	}
	return report, err
}

// Pending lists unpaid sessions grouped by patient and month for the
// manual confirmation view.
func (s *Service) Pending(ctx context.Context) ([]reconciliation.PendingGroup, error) {
	sessions, err := s.records.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return reconciliation.PendingReceivables(sessions), nil
}
