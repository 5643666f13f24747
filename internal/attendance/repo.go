package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one marked meal attendance. Date and Time are the local
// calendar day ("2006-01-02") and clock time ("15:04:05") of the meal.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	MealType  string    `json:"meal_type"`
	QRID      *string   `json:"qr_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertUnique writes a record unless one already exists for the same
// (user, date). The UNIQUE constraint makes this safe under concurrent
// submissions; a losing insert returns ErrAlreadyMarked with no second row.
func (r *Repository) InsertUnique(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.MealType == "" {
		rec.MealType = "general"
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (id, user_id, user_email, user_name, date, time, meal_type, qr_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.UserEmail, rec.UserName, rec.Date, rec.Time, rec.MealType, rec.QRID)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrAlreadyMarked
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser returns a user's records, oldest first so cycle anchoring can
// use the first row directly.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, user_name, date, time, meal_type, qr_id, created_at
		FROM attendance
		WHERE user_id = $1
		ORDER BY date, time
	`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAll returns records with basic filters, newest first.
func (r *Repository) ListAll(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT id, user_id, user_email, user_name, date, time, meal_type, qr_id, created_at FROM attendance`
	args := []any{}
	if userID != "" {
		query += " WHERE user_id = $1"
		args = append(args, userID)
	}
	query += fmt.Sprintf(" ORDER BY date DESC, time DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Export returns every record oldest first, for CSV export.
func (r *Repository) Export(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, user_name, date, time, meal_type, qr_id, created_at
		FROM attendance
		ORDER BY date, time
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// CountDistinctUsers returns the number of users with at least one record.
func (r *Repository) CountDistinctUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT user_id) FROM attendance`).Scan(&n)
	return n, err
}

func collect(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserEmail, &rec.UserName, &rec.Date, &rec.Time, &rec.MealType, &rec.QRID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
