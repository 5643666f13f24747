package feedback

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Entry is one piece of user feedback about the mess.
type Entry struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Rating        int        `json:"rating"`
	Status        string     `json:"status"`
	AdminResponse *string    `json:"admin_response,omitempty"`
	RespondedBy   *string    `json:"responded_by,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Repository persists feedback in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new pending entry.
func (r *Repository) Insert(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Status = StatusPending
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO feedback (id, user_id, user_email, subject, message, rating, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, e.ID, e.UserID, e.UserEmail, e.Subject, e.Message, e.Rating, e.Status)
	if err := row.Scan(&e.CreatedAt); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns entries, optionally filtered to one user, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Entry, error) {
	query := `
		SELECT id, user_id, user_email, subject, message, rating, status, admin_response, responded_by, responded_at, created_at
		FROM feedback`
	args := []any{}
	if userID != "" {
		query += " WHERE user_id = $1"
		args = append(args, userID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserEmail, &e.Subject, &e.Message, &e.Rating, &e.Status, &e.AdminResponse, &e.RespondedBy, &e.RespondedAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// UpdateStatus records the admin decision with an optional response text.
func (r *Repository) UpdateStatus(ctx context.Context, id, status, response, respondedBy string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feedback
		SET status = $2, admin_response = $3, responded_by = $4, responded_at = NOW()
		WHERE id = $1
	`, id, status, response, respondedBy)
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

// CountPending counts entries awaiting a response.
func (r *Repository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback WHERE status = $1`, StatusPending).Scan(&n)
	return n, err
}
