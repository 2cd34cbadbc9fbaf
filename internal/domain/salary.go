package domain

import "time"

// Status of a salary record. The only transition is pending -> approved,
// performed exactly once.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Period filters for history listings. A period restricts records to a
// trailing window ending now; the zero value means no restriction.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodAll     Period = ""
)

// Since returns the start of the trailing window relative to now, and whether
// the period restricts at all.
func (p Period) Since(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodQuarter:
		return now.AddDate(0, -3, 0), true
	}
	return time.Time{}, false
}

// SalaryRecord is one accrual event. The tax breakdown is computed when the
// record is created and never recomputed, even if statutory rates change
// later. ApprovedBy is set if and only if Status is approved.
type SalaryRecord struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;index;not null" json:"userId"`
	User         *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GrossAmount  float64   `gorm:"not null" json:"grossAmount"`
	IncomeTax    float64   `gorm:"not null" json:"incomeTax"`
	MilitaryLevy float64   `gorm:"not null" json:"militaryLevy"`
	NetAmount    float64   `gorm:"not null" json:"netAmount"`
	Comment      string    `gorm:"size:255" json:"comment,omitempty"`
	AccrualDate  time.Time `gorm:"index;not null" json:"accrualDate"`
	Status       Status    `gorm:"size:16;index;not null;default:pending" json:"status"`
	ApprovedBy   *string   `gorm:"size:36" json:"-"`
	Approver     *User     `gorm:"foreignKey:ApprovedBy" json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
}

func (SalaryRecord) TableName() string { return "salary_records" }

// SalaryFilter narrows history listings. Zero values mean "no restriction".
type SalaryFilter struct {
	UserID string
	Status Status
	Period Period
}

// SalaryRepository persists accrual records. Listings are ordered newest
// first; records are never deleted.
type SalaryRepository interface {
	Create(r *SalaryRecord) error
	FindByID(id string) (*SalaryRecord, error)
	List(f SalaryFilter) ([]SalaryRecord, error)
	// Approve flips a pending record to approved, stamping the approver.
	// It reports false when the record was not pending anymore, so the
	// transition stays at-most-once even under concurrent approvals.
	Approve(id, approverID string, at time.Time) (bool, error)
}
