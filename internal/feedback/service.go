package feedback

import (
	"context"
	"database/sql"
	"errors"
)

// Entry statuses.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

var (
	// ErrNotFound is returned when no entry matches.
	ErrNotFound = errors.New("feedback not found")
	// ErrBadStatus is returned for an unrecognized decision.
	ErrBadStatus = errors.New("status must be resolved or rejected")
	// ErrBadRating is returned for out-of-range ratings.
	ErrBadRating = errors.New("rating must be between 1 and 5")
)

// Service coordinates feedback entries.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Submit files a pending entry.
func (s *Service) Submit(ctx context.Context, userID, email, subject, message string, rating int) (Entry, error) {
	if subject == "" || message == "" {
		return Entry{}, errors.New("subject and message required")
	}
	if rating < 1 || rating > 5 {
		return Entry{}, ErrBadRating
	}
	return s.repo.Insert(ctx, Entry{
		UserID:    userID,
		UserEmail: email,
		Subject:   subject,
		Message:   message,
		Rating:    rating,
	})
}

// List returns entries; empty userID means all users.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.List(ctx, userID)
}

// Respond records an admin resolution or rejection with optional text.
func (s *Service) Respond(ctx context.Context, id, status, response, respondedBy string) error {
	if status != StatusResolved && status != StatusRejected {
		return ErrBadStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status, response, respondedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CountPending counts entries awaiting a response.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountPending(ctx)
}
