package payment

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Payment is one monthly mess bill payment submission.
type Payment struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	Amount        int        `json:"amount"`
	Month         string     `json:"month"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Method        *string    `json:"method,omitempty"`
	ProofURL      *string    `json:"proof_url,omitempty"`
	Status        string     `json:"status"`
	VerifiedBy    *string    `json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Stats aggregates the admin dashboard payment numbers.
type Stats struct {
	PendingCount   int `json:"pending_count"`
	TotalRevenue   int `json:"total_revenue"`
	MonthlyRevenue int `json:"monthly_revenue"`
}

// Repository persists payments in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new pending payment.
func (r *Repository) Insert(ctx context.Context, p Payment) (Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Status = StatusPending
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (id, user_id, user_email, amount, month, transaction_id, method, proof_url, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, p.ID, p.UserID, p.UserEmail, p.Amount, p.Month, p.TransactionID, p.Method, p.ProofURL, p.Status)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// List returns payments, optionally filtered to one user, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Payment, error) {
	query := `
		SELECT id, user_id, user_email, amount, month, transaction_id, method, proof_url, status, verified_by, verified_at, created_at
		FROM payments`
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

	var res []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.UserEmail, &p.Amount, &p.Month, &p.TransactionID, &p.Method, &p.ProofURL, &p.Status, &p.VerifiedBy, &p.VerifiedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// UpdateStatus records the admin verification decision.
func (r *Repository) UpdateStatus(ctx context.Context, id, status, verifiedBy string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $2, verified_by = $3, verified_at = NOW()
		WHERE id = $1
	`, id, status, verifiedBy)
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

// GetStats computes pending count plus total and current-month revenue.
func (r *Repository) GetStats(ctx context.Context, currentMonth string) (Stats, error) {
	var st Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid' AND month = $1), 0)
		FROM payments
	`, currentMonth).Scan(&st.PendingCount, &st.TotalRevenue, &st.MonthlyRevenue)
	return st, err
}
