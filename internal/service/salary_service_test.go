package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"payroll-api/internal/domain"
	"payroll-api/pkg/utils"
)

func seedRecord(t *testing.T, db *gorm.DB, userID string, net float64, status domain.Status, accrued time.Time) *domain.SalaryRecord {
	t.Helper()
	rec := &domain.SalaryRecord{
		ID:          utils.NewID(),
		UserID:      userID,
		GrossAmount: net / 0.77,
		NetAmount:   net,
		AccrualDate: accrued,
		Status:      status,
	}
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func TestAccrue(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 20000)

	rec, err := svc.Accrue(context.Background(), AccrueInput{
		UserID:      payee.ID,
		GrossAmount: 20000,
		Comment:     "salary for October",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, rec.Status)
	require.Equal(t, 20000.0, rec.GrossAmount)
	require.Equal(t, 3600.0, rec.IncomeTax)
	require.Equal(t, 1000.0, rec.MilitaryLevy)
	require.Equal(t, 15400.0, rec.NetAmount)
	require.Nil(t, rec.ApprovedBy)
	require.Nil(t, rec.ApprovedAt)
	require.WithinDuration(t, time.Now(), rec.AccrualDate, 5*time.Second)
}

func TestAccrueValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 0)

	_, err := svc.Accrue(context.Background(), AccrueInput{UserID: payee.ID, GrossAmount: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Accrue(context.Background(), AccrueInput{UserID: payee.ID, GrossAmount: -50})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Accrue(context.Background(), AccrueInput{UserID: "missing", GrossAmount: 100})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApprove(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 0)
	manager := seedUser(t, db, "manager", domain.RoleManager, 0)

	rec, err := svc.Accrue(context.Background(), AccrueInput{UserID: payee.ID, GrossAmount: 10000})
	require.NoError(t, err)

	got, err := svc.Approve(context.Background(), rec.ID, manager.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.ApprovedBy)
	require.Equal(t, manager.ID, *got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	require.NotNil(t, got.Approver)
	require.Equal(t, "manager", got.Approver.Name)

	// The breakdown stays exactly what accrual computed.
	require.Equal(t, rec.NetAmount, got.NetAmount)
	require.Equal(t, rec.IncomeTax, got.IncomeTax)
}

func TestApproveTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 0)
	first := seedUser(t, db, "first", domain.RoleManager, 0)
	second := seedUser(t, db, "second", domain.RoleManager, 0)

	rec, err := svc.Accrue(context.Background(), AccrueInput{UserID: payee.ID, GrossAmount: 10000})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), rec.ID, first.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), rec.ID, second.ID)
	require.ErrorIs(t, err, ErrAlreadyApproved)

	// The original approver stamp must survive the rejected attempt.
	var stored domain.SalaryRecord
	require.NoError(t, db.First(&stored, "id = ?", rec.ID).Error)
	require.NotNil(t, stored.ApprovedBy)
	require.Equal(t, first.ID, *stored.ApprovedBy)
}

func TestApproveMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	manager := seedUser(t, db, "manager", domain.RoleManager, 0)

	_, err := svc.Approve(context.Background(), "missing-id", manager.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAverageNet(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 0)
	other := seedUser(t, db, "other", domain.RoleUser, 0)

	// No records at all: a defined zero, not a fault.
	avg, err := svc.AverageNet(context.Background(), payee.ID)
	require.NoError(t, err)
	require.Zero(t, avg)

	now := time.Now()
	seedRecord(t, db, payee.ID, 1000, domain.StatusApproved, now)
	seedRecord(t, db, payee.ID, 2000, domain.StatusApproved, now)
	seedRecord(t, db, payee.ID, 99999, domain.StatusPending, now) // ignored
	seedRecord(t, db, other.ID, 500, domain.StatusApproved, now)  // other payee

	avg, err = svc.AverageNet(context.Background(), payee.ID)
	require.NoError(t, err)
	require.Equal(t, 1500.0, avg)

	// Only pending records: still zero.
	avg, err = svc.AverageNet(context.Background(), "no-such-user")
	require.NoError(t, err)
	require.Zero(t, avg)
}

func TestHistoryOrderingAndFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	payee := seedUser(t, db, "payee", domain.RoleUser, 0)

	now := time.Now()
	old := seedRecord(t, db, payee.ID, 100, domain.StatusApproved, now.AddDate(0, -2, 0))
	mid := seedRecord(t, db, payee.ID, 200, domain.StatusPending, now.AddDate(0, 0, -10))
	fresh := seedRecord(t, db, payee.ID, 300, domain.StatusPending, now.AddDate(0, 0, -1))

	t.Run("newest first, unfiltered", func(t *testing.T) {
		recs, err := svc.History(context.Background(), payee.ID, "", domain.PeriodAll)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		require.Equal(t, fresh.ID, recs[0].ID)
		require.Equal(t, mid.ID, recs[1].ID)
		require.Equal(t, old.ID, recs[2].ID)
	})

	t.Run("trailing month and pending only", func(t *testing.T) {
		recs, err := svc.History(context.Background(), payee.ID, domain.StatusPending, domain.PeriodMonth)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		require.Equal(t, fresh.ID, recs[0].ID)
		require.Equal(t, mid.ID, recs[1].ID)
	})

	t.Run("trailing week", func(t *testing.T) {
		recs, err := svc.History(context.Background(), payee.ID, "", domain.PeriodWeek)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, fresh.ID, recs[0].ID)
	})

	t.Run("approved only", func(t *testing.T) {
		recs, err := svc.History(context.Background(), payee.ID, domain.StatusApproved, domain.PeriodAll)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		require.Equal(t, old.ID, recs[0].ID)
	})

	t.Run("repeat read is identical", func(t *testing.T) {
		a, err := svc.History(context.Background(), payee.ID, "", domain.PeriodAll)
		require.NoError(t, err)
		b, err := svc.History(context.Background(), payee.ID, "", domain.PeriodAll)
		require.NoError(t, err)
		require.Equal(t, len(a), len(b))
		for i := range a {
			require.Equal(t, a[i].ID, b[i].ID)
		}
	})
}

func TestListAllIncludesPayee(t *testing.T) {
	db := newTestDB(t)
	svc := newSalaryService(t, db)
	a := seedUser(t, db, "alpha", domain.RoleUser, 0)
	b := seedUser(t, db, "beta", domain.RoleUser, 0)

	seedRecord(t, db, a.ID, 100, domain.StatusPending, time.Now())
	seedRecord(t, db, b.ID, 200, domain.StatusPending, time.Now())

	recs, err := svc.ListAll(context.Background(), "", domain.PeriodAll)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		require.NotNil(t, r.User, "manager view joins the payee")
	}
}
