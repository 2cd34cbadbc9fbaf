package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"payroll-api/internal/core/cache"
	"payroll-api/internal/domain"
	"payroll-api/internal/payroll"
	"payroll-api/pkg/utils"
)

var (
	accrualsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payroll_accruals_total",
		Help: "Count of salary accruals created",
	})
	approvalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payroll_approvals_total",
		Help: "Count of salary accruals approved",
	})
)

func init() { prometheus.MustRegister(accrualsTotal, approvalsTotal) }

const avgCacheTTL = 5 * time.Minute

// SalaryService is the accrual ledger: records enter as pending, are approved
// exactly once by a manager, and keep the tax breakdown they were created
// with. The cache is optional; without it aggregates hit the database.
type SalaryService struct {
	salaries domain.SalaryRepository
	users    domain.UserRepository
	cache    *cache.Cache
}

func NewSalaryService(salaries domain.SalaryRepository, users domain.UserRepository, c *cache.Cache) *SalaryService {
	return &SalaryService{salaries: salaries, users: users, cache: c}
}

type AccrueInput struct {
	UserID      string
	GrossAmount float64
	Comment     string
}

// Accrue creates a pending record for the payee. The deduction breakdown is
// computed here, once, and stored on the record.
func (s *SalaryService) Accrue(ctx context.Context, in AccrueInput) (*domain.SalaryRecord, error) {
	if in.GrossAmount <= 0 {
		return nil, validationf("grossAmount must be positive")
	}
	payee, err := s.users.FindByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if payee == nil {
		return nil, ErrNotFound
	}

	b := payroll.Deductions(in.GrossAmount)
	rec := &domain.SalaryRecord{
		ID:           utils.NewID(),
		UserID:       payee.ID,
		GrossAmount:  b.Gross,
		IncomeTax:    b.IncomeTax,
		MilitaryLevy: b.MilitaryLevy,
		NetAmount:    b.Net,
		Comment:      in.Comment,
		AccrualDate:  time.Now(),
		Status:       domain.StatusPending,
	}
	if err := s.salaries.Create(rec); err != nil {
		return nil, err
	}
	rec.User = payee
	accrualsTotal.Inc()
	return rec, nil
}

// Approve moves a record from pending to approved, stamping the approver.
// Approving an already-approved record is an error, not a silent no-op: the
// stamp and the aggregates must not move twice.
func (s *SalaryService) Approve(ctx context.Context, recordID, approverID string) (*domain.SalaryRecord, error) {
	rec, err := s.salaries.FindByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.Status == domain.StatusApproved {
		return nil, ErrAlreadyApproved
	}

	ok, err := s.salaries.Approve(recordID, approverID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against another approver.
		return nil, ErrAlreadyApproved
	}
	approvalsTotal.Inc()
	if s.cache != nil {
		s.cache.Invalidate(ctx, avgCacheKey(rec.UserID))
	}
	return s.salaries.FindByID(recordID)
}

// History lists one payee's records newest first, optionally narrowed by
// status and a trailing period window. Reads are idempotent.
func (s *SalaryService) History(ctx context.Context, userID string, status domain.Status, period domain.Period) ([]domain.SalaryRecord, error) {
	return s.salaries.List(domain.SalaryFilter{UserID: userID, Status: status, Period: period})
}

// ListAll is the manager view: every payee, same filters.
func (s *SalaryService) ListAll(ctx context.Context, status domain.Status, period domain.Period) ([]domain.SalaryRecord, error) {
	return s.salaries.List(domain.SalaryFilter{Status: status, Period: period})
}

// AverageNet returns the mean net amount over the payee's approved records.
// No approved records means 0, never a division fault.
func (s *SalaryService) AverageNet(ctx context.Context, userID string) (float64, error) {
	if s.cache == nil {
		return s.averageNet(userID)
	}
	out, err := cache.GetOrLoadJSON[float64](s.cache, ctx, avgCacheKey(userID), avgCacheTTL, func(context.Context) (*float64, error) {
		v, e := s.averageNet(userID)
		if e != nil {
			return nil, e
		}
		return &v, nil
	})
	if err != nil {
		return 0, err
	}
	if out == nil {
		return 0, nil
	}
	return *out, nil
}

func (s *SalaryService) averageNet(userID string) (float64, error) {
	recs, err := s.salaries.List(domain.SalaryFilter{UserID: userID, Status: domain.StatusApproved})
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}
	var total float64
	for _, r := range recs {
		total += r.NetAmount
	}
	return payroll.Round(total / float64(len(recs))), nil
}

func avgCacheKey(userID string) string { return "payroll:avgnet:" + userID }
