package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	// ErrNotFound is returned when no request matches.
	ErrNotFound = errors.New("leave request not found")
	// ErrBadStatus is returned for an unrecognized decision.
	ErrBadStatus = errors.New("status must be approved or rejected")
)

// Service coordinates leave requests.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Submit files a pending request.
func (s *Service) Submit(ctx context.Context, userID, email, startDate, endDate, mealType, reason string) (Request, error) {
	if startDate == "" || endDate == "" || mealType == "" || reason == "" {
		return Request{}, errors.New("start date, end date, meal type and reason required")
	}
	return s.repo.Insert(ctx, Request{
		UserID:    userID,
		UserEmail: email,
		StartDate: startDate,
		EndDate:   endDate,
		MealType:  mealType,
		Reason:    reason,
	})
}

// List returns requests; empty userID means all users.
func (s *Service) List(ctx context.Context, userID string) ([]Request, error) {
	return s.repo.List(ctx, userID)
}

// Respond records an admin approval or rejection.
func (s *Service) Respond(ctx context.Context, id, status, respondedBy string) error {
	if status != StatusApproved && status != StatusRejected {
		return ErrBadStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status, respondedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CountApprovedInMonth counts approvals created in a calendar month.
func (s *Service) CountApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (int, error) {
	return s.repo.CountApprovedInMonth(ctx, userID, year, month)
}

// CountPending counts undecided requests.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}
