package qr

import (
	"context"
	"errors"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// DateLayout matches the calendar-day format on attendance records.
const DateLayout = "2006-01-02"

var (
	// ErrUnknownCode is returned when a scanned value matches no issued code.
	ErrUnknownCode = errors.New("unknown qr code")
	// ErrNotToday is returned when a code's date is not the current day.
	ErrNotToday = errors.New("qr code is not valid for today")
	// ErrNoActiveCode is returned when no code has been issued for a date.
	ErrNoActiveCode = errors.New("no qr code issued for today")
)

// Service issues and validates daily attendance codes.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Value builds the opaque payload embedded in the QR image: the date plus
// a millisecond timestamp as uniqueness token.
func Value(now time.Time) string {
	return fmt.Sprintf("meal-attendance-%s-%d", now.Format(DateLayout), now.UnixMilli())
}

// Issue creates today's code. Issuing again replaces the active code:
// scans validate against the latest issued value for the day.
func (s *Service) Issue(ctx context.Context, createdBy, mealType string) (Code, error) {
	now := time.Now()
	code := Code{
		Date:      now.Format(DateLayout),
		Value:     Value(now),
		MealType:  mealType,
		CreatedBy: createdBy,
	}
	return s.repo.Insert(ctx, code)
}

// Active returns the current code for a date, or ErrNoActiveCode.
func (s *Service) Active(ctx context.Context, date string) (Code, error) {
	code, err := s.repo.ActiveForDate(ctx, date)
	if err != nil {
		return Code{}, err
	}
	if code == nil {
		return Code{}, ErrNoActiveCode
	}
	return *code, nil
}

// ValidateScan resolves a scanned value and checks it is dated today.
func (s *Service) ValidateScan(ctx context.Context, value, today string) (*Code, error) {
	code, err := s.repo.GetByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrUnknownCode
	}
	if err := CheckDate(code.Date, today); err != nil {
		return nil, err
	}
	return code, nil
}

// CheckDate verifies a code's date field equals the given day.
func CheckDate(codeDate, today string) error {
	d, err := time.Parse(DateLayout, codeDate)
	if err != nil {
		return fmt.Errorf("bad qr date %q: %w", codeDate, err)
	}
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", today, err)
	}
	if !d.Equal(t) {
		return ErrNotToday
	}
	return nil
}

// PNG renders a code value as a QR image.
func PNG(value string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(value, qrcode.Medium, size)
}
