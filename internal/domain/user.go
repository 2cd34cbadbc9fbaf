package domain

import "time"

// Role is the closed set of account roles. Anything else is rejected at the
// edge; handlers and middleware only ever see one of these four values.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleAccountant Role = "accountant"
	RoleUser       Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	FixedSalary  float64   `gorm:"not null;default:0" json:"fixedSalary"` // baseline gross, >= 0
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRepository persists accounts. Deletes are hard: the payroll ledger keeps
// its own history and users carry no tombstone.
type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List() ([]User, error)
	Update(u *User) error
	Delete(id string) error
}
