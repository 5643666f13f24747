package qr

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Code is a daily-rotating attendance QR code.
type Code struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Value     string    `json:"qr_value"`
	MealType  string    `json:"meal_type"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists daily QR codes in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new code.
func (r *Repository) Insert(ctx context.Context, code Code) (Code, error) {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	if code.MealType == "" {
		code.MealType = "general"
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO daily_qr (id, date, qr_value, meal_type, created_by)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, code.ID, code.Date, code.Value, code.MealType, code.CreatedBy)
	if err := row.Scan(&code.CreatedAt); err != nil {
		return Code{}, err
	}
	return code, nil
}

// ActiveForDate returns the most recently issued code for a date, or nil.
func (r *Repository) ActiveForDate(ctx context.Context, date string) (*Code, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, qr_value, meal_type, created_by, created_at
		FROM daily_qr
		WHERE date = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, date)
	return scanCode(row)
}

// GetByValue returns the code carrying a scanned value, or nil.
func (r *Repository) GetByValue(ctx context.Context, value string) (*Code, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, qr_value, meal_type, created_by, created_at
		FROM daily_qr
		WHERE qr_value = $1
	`, value)
	return scanCode(row)
}

func scanCode(row *sql.Row) (*Code, error) {
	var code Code
	if err := row.Scan(&code.ID, &code.Date, &code.Value, &code.MealType, &code.CreatedBy, &code.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}
