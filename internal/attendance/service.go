package attendance

import (
	"context"
	"errors"
	"time"

	"messmate/internal/leave"
	"messmate/internal/qr"
)

// ErrAlreadyMarked is returned when a user already has a record for the day.
var ErrAlreadyMarked = errors.New("already attended today")

// Summary is a user's current-cycle view with the estimated bill.
type Summary struct {
	TotalMeals     int      `json:"total_meals"`
	Cycle          Cycle    `json:"cycle"`
	CycleMeals     []Record `json:"cycle_meals"`
	ApprovedLeaves int      `json:"approved_leaves"`
	EstimatedBill  int      `json:"estimated_bill"`
}

// Service coordinates attendance marking and billing.
type Service struct {
	repo      *Repository
	codes     *qr.Service
	leaves    *leave.Service
	cycleDays int
	mealRate  int
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository, codes *qr.Service, leaves *leave.Service, cycleDays, mealRate int) *Service {
	if cycleDays <= 0 {
		cycleDays = 30
	}
	if mealRate <= 0 {
		mealRate = 80
	}
	return &Service{repo: repo, codes: codes, leaves: leaves, cycleDays: cycleDays, mealRate: mealRate}
}

// Mark validates the scanned QR value against today's issued code and
// records attendance. The database enforces one record per (user, day);
// a duplicate attempt returns ErrAlreadyMarked.
func (s *Service) Mark(ctx context.Context, userID, email, name, qrValue string) (Record, error) {
	if userID == "" || qrValue == "" {
		return Record{}, errors.New("user and qr value required")
	}
	now := time.Now()
	today := now.Format(DateLayout)

	code, err := s.codes.ValidateScan(ctx, qrValue, today)
	if err != nil {
		return Record{}, err
	}

	mealType := code.MealType
	if mealType == "" {
		mealType = "general"
	}
	rec := Record{
		UserID:    userID,
		UserEmail: email,
		UserName:  name,
		Date:      today,
		Time:      now.Format("15:04:05"),
		MealType:  mealType,
		QRID:      &code.ID,
	}
	return s.repo.InsertUnique(ctx, rec)
}

// History returns the caller's records, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	return s.repo.ListAll(ctx, userID, limit, offset)
}

// ListAll returns records across users for the admin view.
func (s *Service) ListAll(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	return s.repo.ListAll(ctx, userID, limit, offset)
}

// Summarize computes the current rolling cycle and estimated bill for a
// user. The cycle anchors at the first-ever attendance; the leave deduction
// counts approvals created in the current calendar month.
func (s *Service) Summarize(ctx context.Context, userID string) (Summary, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if len(records) == 0 {
		return Summary{}, nil
	}

	first, err := time.Parse(DateLayout, records[0].Date)
	if err != nil {
		return Summary{}, err
	}
	now := time.Now()
	cyc := CurrentCycle(first, now, s.cycleDays)
	cycleMeals := FilterCycle(records, cyc)

	approved, err := s.leaves.CountApprovedInMonth(ctx, userID, now.Year(), now.Month())
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalMeals:     len(records),
		Cycle:          cyc,
		CycleMeals:     cycleMeals,
		ApprovedLeaves: approved,
		EstimatedBill:  EstimateBill(len(cycleMeals), approved, s.mealRate),
	}, nil
}

// CountDistinctUsers reports how many users have attended at least once.
func (s *Service) CountDistinctUsers(ctx context.Context) (int, error) {
	return s.repo.CountDistinctUsers(ctx)
}

// ExportCSV renders every record as the fixed-format CSV download.
func (s *Service) ExportCSV(ctx context.Context) (filename string, data []byte, err error) {
	records, err := s.repo.Export(ctx)
	if err != nil {
		return "", nil, err
	}
	return CSVFilename(time.Now()), []byte(CSV(records)), nil
}
