package service

import (
	"strings"

	"payroll-api/internal/domain"
	"payroll-api/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	FixedSalary float64
}

type UpdateUserInput struct {
	Name        string
	Email       string
	Role        string
	FixedSalary float64
}

func (s *UserService) Create(in CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, validationf("name, email and password are required")
	}
	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, validationf("unknown role %q", in.Role)
	}
	if in.FixedSalary < 0 {
		return nil, validationf("fixedSalary must not be negative")
	}

	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         role,
		FixedSalary:  in.FixedSalary,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(id string, in UpdateUserInput) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != u.Email {
		if existing, err := s.users.FindByEmail(email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		u.Email = email
	}
	if in.Role != "" {
		role := domain.Role(in.Role)
		if !role.Valid() {
			return nil, validationf("unknown role %q", in.Role)
		}
		u.Role = role
	}
	if in.FixedSalary < 0 {
		return nil, validationf("fixedSalary must not be negative")
	}
	u.FixedSalary = in.FixedSalary

	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(id string) error {
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	return s.users.Delete(id)
}

func (s *UserService) ResetPassword(id, password string) error {
	if password == "" {
		return validationf("password is required")
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	u.PasswordHash = utils.HashPassword(password)
	return s.users.Update(u)
}

func (s *UserService) List() ([]domain.User, error) { return s.users.List() }

func (s *UserService) FindByID(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Authenticate checks the login credentials. The caller issues the token; the
// same error comes back for an unknown email and a wrong password.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
