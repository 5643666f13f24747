package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"messmate/internal/auth"
)

// Roles recognized by the service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	// ErrNotFound is returned when no account matches.
	ErrNotFound = errors.New("user not found")
	// ErrAdminProtected is returned when deleting a configured admin account.
	ErrAdminProtected = errors.New("cannot delete admin users")
	// ErrEmailTaken is returned on duplicate registration.
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials is returned on a failed login.
	ErrBadCredentials = errors.New("invalid email or password")
)

// Policy answers role questions from a single configured admin set,
// replacing per-call-site hardcoded email lists.
type Policy struct {
	adminEmails map[string]struct{}
}

// NewPolicy builds a policy from the configured admin emails.
func NewPolicy(adminEmails []string) Policy {
	set := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return Policy{adminEmails: set}
}

// IsAdminEmail reports whether the email is in the configured admin set.
func (p Policy) IsAdminEmail(email string) bool {
	_, ok := p.adminEmails[strings.ToLower(email)]
	return ok
}

// RoleFor resolves the effective role for a new or authenticating account.
func (p Policy) RoleFor(email, storedRole string) string {
	if storedRole == RoleAdmin || p.IsAdminEmail(email) {
		return RoleAdmin
	}
	return RoleUser
}

// Service coordinates account management and authentication.
type Service struct {
	repo   *Repository
	policy Policy
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Policy exposes the role policy for collaborators.
func (s *Service) Policy() Policy { return s.policy }

// Register creates an account. The configured admin set wins over the
// requested role, so an admin email always lands as admin.
func (s *Service) Register(ctx context.Context, email, name, password, role, createdBy string) (Account, error) {
	if email == "" || name == "" || password == "" {
		return Account{}, errors.New("email, name and password required")
	}
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, err
	}
	if existing != nil {
		return Account{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Account{}, err
	}
	acc := Account{
		Email:        email,
		Name:         name,
		Role:         s.policy.RoleFor(email, role),
		PasswordHash: hash,
	}
	if createdBy != "" {
		acc.CreatedBy = &createdBy
	}
	return s.repo.Insert(ctx, acc)
}

// Authenticate checks credentials and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Account{}, err
	}
	if acc == nil || !auth.CheckPassword(acc.PasswordHash, password) {
		return Account{}, ErrBadCredentials
	}
	acc.Role = s.policy.RoleFor(acc.Email, acc.Role)
	return *acc, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Delete removes an account unless it belongs to a configured admin.
func (s *Service) Delete(ctx context.Context, id string) error {
	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if acc == nil {
		return ErrNotFound
	}
	if acc.Role == RoleAdmin || s.policy.IsAdminEmail(acc.Email) {
		return ErrAdminProtected
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
