package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
)

// StaffService handles admin management of user accounts.
type StaffService struct {
	Users *repos.UserRepo
}

func NewStaffService(users *repos.UserRepo) *StaffService {
	return &StaffService{Users: users}
}

func (s *StaffService) ListUsers() ([]domain.User, error) {
	return s.Users.List()
}

func (s *StaffService) CreateUser(username, name, password, roles string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(name) == "" {
		return nil, &domain.ValidationError{Message: "username and name are required"}
	}
	if len(password) < 8 {
		return nil, &domain.ValidationError{Message: "password must be at least 8 characters"}
	}
	if roles == "" {
		roles = domain.RoleWaiter
	}

	existing, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.BusinessRuleError{Message: "username is already taken"}
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(&domain.User{
		Username: username,
		Name:     name,
		Hash:     string(h),
		Roles:    roles,
	})
}

// UpdateUser applies an optional-field patch; a new password is re-hashed
// before it reaches the repository.
func (s *StaffService) UpdateUser(id int64, patch domain.UserPatch) (*domain.User, error) {
	var hash *string
	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return nil, &domain.ValidationError{Message: "password must be at least 8 characters"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), 12)
		if err != nil {
			return nil, err
		}
		hs := string(h)
		hash = &hs
	}
	if err := s.Users.Update(id, patch.Username, patch.Name, hash, patch.Roles); err != nil {
		return nil, err
	}
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Kind: "user", ID: id}
	}
	return u, nil
}
