package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"payroll-api/internal/domain"
	"payroll-api/internal/repo"
	"payroll-api/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.SalaryRecord{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role domain.Role, fixedSalary float64) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: utils.HashPassword("secret123"),
		Role:         role,
		FixedSalary:  fixedSalary,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newSalaryService(t *testing.T, db *gorm.DB) *SalaryService {
	t.Helper()
	return NewSalaryService(repo.NewSalaryRepo(db), repo.NewUserRepo(db), nil)
}

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(repo.NewUserRepo(db))
}
