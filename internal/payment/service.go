package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Payment statuses.
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
)

var (
	// ErrNotFound is returned when no payment matches.
	ErrNotFound = errors.New("payment not found")
	// ErrBadStatus is returned for an unrecognized verification decision.
	ErrBadStatus = errors.New("status must be paid or rejected")
)

// Service coordinates payment submissions and verification.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Submit files a pending payment. Month defaults to the current month label
// ("January 2006") when empty, matching the revenue grouping.
func (s *Service) Submit(ctx context.Context, userID, email string, amount int, month, transactionID, method, proofURL string) (Payment, error) {
	if amount <= 0 {
		return Payment{}, errors.New("amount must be positive")
	}
	if month == "" {
		month = MonthLabel(time.Now())
	}
	p := Payment{
		UserID:    userID,
		UserEmail: email,
		Amount:    amount,
		Month:     month,
	}
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	if method != "" {
		p.Method = &method
	}
	if proofURL != "" {
		p.ProofURL = &proofURL
	}
	return s.repo.Insert(ctx, p)
}

// List returns payments; empty userID means all users.
func (s *Service) List(ctx context.Context, userID string) ([]Payment, error) {
	return s.repo.List(ctx, userID)
}

// Verify records an admin verification or rejection.
func (s *Service) Verify(ctx context.Context, id, status, verifiedBy string) error {
	if status != StatusPaid && status != StatusRejected {
		return ErrBadStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status, verifiedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetStats returns the admin dashboard payment aggregates.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	return s.repo.GetStats(ctx, MonthLabel(time.Now()))
}

// MonthLabel formats the month grouping key, e.g. "January 2026".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
