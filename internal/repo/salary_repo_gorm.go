package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"payroll-api/internal/domain"
)

type SalaryRepo struct{ db *gorm.DB }

func NewSalaryRepo(db *gorm.DB) *SalaryRepo { return &SalaryRepo{db: db} }

func (r *SalaryRepo) Create(rec *domain.SalaryRecord) error {
	return r.db.Create(rec).Error
}

func (r *SalaryRepo) FindByID(id string) (*domain.SalaryRecord, error) {
	var rec domain.SalaryRecord
	err := r.db.Preload("User").Preload("Approver").First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rec, err
}

// List returns records newest first, narrowed by the filter. Period windows
// are trailing, measured from now.
func (r *SalaryRepo) List(f domain.SalaryFilter) ([]domain.SalaryRecord, error) {
	q := r.db.Model(&domain.SalaryRecord{}).Preload("User").Preload("Approver")
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if since, ok := f.Period.Since(time.Now()); ok {
		q = q.Where("accrual_date >= ?", since)
	}

	var recs []domain.SalaryRecord
	err := q.Order("accrual_date desc").Find(&recs).Error
	return recs, err
}

// Approve performs the guarded pending -> approved transition. The status
// predicate in the WHERE clause is what keeps a raced double approval out.
func (r *SalaryRepo) Approve(id, approverID string, at time.Time) (bool, error) {
	res := r.db.Model(&domain.SalaryRecord{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]any{
			"status":      domain.StatusApproved,
			"approved_by": approverID,
			"approved_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
