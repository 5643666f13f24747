package menu

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when no item matches.
var ErrNotFound = errors.New("menu item not found")

// Service coordinates weekly menu management.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Add creates a new item. All three fields are required.
func (s *Service) Add(ctx context.Context, day, mealType, items, createdBy string) (Item, error) {
	if day == "" || mealType == "" || items == "" {
		return Item{}, errors.New("day, meal type and items required")
	}
	return s.repo.Insert(ctx, Item{
		Day:       day,
		MealType:  mealType,
		Items:     items,
		CreatedBy: createdBy,
	})
}

// Weekly returns the full menu.
func (s *Service) Weekly(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Today returns items for the current weekday.
func (s *Service) Today(ctx context.Context) ([]Item, error) {
	return s.repo.ListByDay(ctx, time.Now().Weekday().String())
}

// Update rewrites an item.
func (s *Service) Update(ctx context.Context, id, day, mealType, items string) error {
	if day == "" || mealType == "" || items == "" {
		return errors.New("day, meal type and items required")
	}
	if err := s.repo.Update(ctx, id, day, mealType, items); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
