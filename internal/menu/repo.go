package menu

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Item is one weekly menu entry. Duplicates per (day, meal type) are allowed.
type Item struct {
	ID        string     `json:"id"`
	Day       string     `json:"day"`
	MealType  string     `json:"meal_type"`
	Items     string     `json:"items"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Repository persists menu items in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new item.
func (r *Repository) Insert(ctx context.Context, item Item) (Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, day, meal_type, items, created_by)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, item.ID, item.Day, item.MealType, item.Items, item.CreatedBy)
	if err := row.Scan(&item.CreatedAt); err != nil {
		return Item{}, err
	}
	return item, nil
}

// List returns the full weekly menu.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	return r.query(ctx, `
		SELECT id, day, meal_type, items, created_by, created_at, updated_at
		FROM menu_items
		ORDER BY created_at
	`)
}

// ListByDay returns items for one weekday, case-insensitively.
func (r *Repository) ListByDay(ctx context.Context, day string) ([]Item, error) {
	return r.query(ctx, `
		SELECT id, day, meal_type, items, created_by, created_at, updated_at
		FROM menu_items
		WHERE LOWER(day) = LOWER($1)
		ORDER BY created_at
	`, day)
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Day, &item.MealType, &item.Items, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, rows.Err()
}

// Update rewrites an item's fields.
func (r *Repository) Update(ctx context.Context, id, day, mealType, items string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET day = $2, meal_type = $3, items = $4, updated_at = NOW()
		WHERE id = $1
	`, id, day, mealType, items)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
