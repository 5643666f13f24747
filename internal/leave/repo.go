package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Request is a user's advance notice of skipped meals.
type Request struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserEmail   string     `json:"user_email"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	MealType    string     `json:"meal_type"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RespondedBy *string    `json:"responded_by,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Repository persists leave requests in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new pending request.
func (r *Repository) Insert(ctx context.Context, req Request) (Request, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = StatusPending
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (id, user_id, user_email, start_date, end_date, meal_type, reason, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, req.ID, req.UserID, req.UserEmail, req.StartDate, req.EndDate, req.MealType, req.Reason, req.Status)
	if err := row.Scan(&req.CreatedAt); err != nil {
		return Request{}, err
	}
	return req, nil
}

// List returns requests, optionally filtered to one user, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Request, error) {
	query := `
		SELECT id, user_id, user_email, start_date, end_date, meal_type, reason, status, responded_by, responded_at, created_at
		FROM leave_requests`
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

	var res []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.UserID, &req.UserEmail, &req.StartDate, &req.EndDate, &req.MealType, &req.Reason, &req.Status, &req.RespondedBy, &req.RespondedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	return res, rows.Err()
}

// UpdateStatus records the admin decision on a request.
func (r *Repository) UpdateStatus(ctx context.Context, id, status, respondedBy string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = $2, responded_by = $3, responded_at = NOW()
		WHERE id = $1
	`, id, status, respondedBy)
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

// CountApprovedInMonth counts a user's approved requests created within the
// given calendar month. Used by bill estimation. Callers pass the year and
// month of the server's local clock, so the window is local-time too.
func (r *Repository) CountApprovedInMonth(ctx context.Context, userID string, year int, month time.Month) (int, error) {
	start, end := monthWindow(year, month, time.Local)
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM leave_requests
		WHERE user_id = $1 AND status = $2 AND created_at >= $3 AND created_at < $4
	`, userID, StatusApproved, start, end).Scan(&n)
	return n, err
}

// monthWindow returns the [start, end) instants of a calendar month in loc.
func monthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// CountPending counts requests awaiting a decision.
func (r *Repository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, StatusPending).Scan(&n)
	return n, err
}
