package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account is a registered mess user.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository persists user accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new account.
func (r *Repository) Insert(ctx context.Context, acc Account) (Account, error) {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, name, role, password_hash, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, acc.ID, acc.Email, acc.Name, acc.Role, acc.PasswordHash, acc.CreatedBy)
	if err := row.Scan(&acc.CreatedAt); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// GetByEmail returns the account for an email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, password_hash, created_by, created_at
		FROM users WHERE email = $1
	`, email)
	return scanAccount(row)
}

// Get returns the account by id, or nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, role, password_hash, created_by, created_at
		FROM users WHERE id = $1
	`, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*Account, error) {
	var acc Account
	if err := row.Scan(&acc.ID, &acc.Email, &acc.Name, &acc.Role, &acc.PasswordHash, &acc.CreatedBy, &acc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

// List returns all accounts ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, role, password_hash, created_by, created_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var acc Account
		if err := rows.Scan(&acc.ID, &acc.Email, &acc.Name, &acc.Role, &acc.PasswordHash, &acc.CreatedBy, &acc.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// Delete removes an account row. Attendance, feedback and payment rows
// referencing the user are intentionally left in place.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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
