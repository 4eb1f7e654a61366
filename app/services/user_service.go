package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"netsketch/app/apperr"
	"netsketch/app/dto"
	"netsketch/app/models"
	"netsketch/app/policy"
	"netsketch/app/repo"
)

// ErrInvalidCredentials is returned by ValidateCredentials; it never reveals
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	users *repo.UserRepository
	newID func() string
}

func NewUserService(users *repo.UserRepository, newID func() string) *UserService {
	return &UserService{users: users, newID: newID}
}

// EnsureAdmin seeds the bootstrap admin account if it does not exist yet.
func (s *UserService) EnsureAdmin(username, password string) error {
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(&models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         policy.RoleAdmin,
	})
}

// CreateUser registers a user with one of the three known roles. The
// duplicate-username check runs before the password is hashed.
func (s *UserService) CreateUser(username, password, role, email string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperr.Validationf("username and password are required")
	}
	if role == "" {
		role = policy.RoleUser
	}
	if !policy.ValidRole(role) {
		return nil, apperr.Validationf("unknown role %q", role)
	}
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.ErrDuplicateUsername
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        email,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateUser(id string, req dto.UpdateUserRequest) (*models.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Username != nil && *req.Username != u.Username {
		if *req.Username == "" {
			return nil, apperr.Validationf("username cannot be empty")
		}
		count, err := s.users.CountByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.ErrDuplicateUsername
		}
		u.Username = *req.Username
	}
	if req.Role != nil {
		if !policy.ValidRole(*req.Role) {
			return nil, apperr.Validationf("unknown role %q", *req.Role)
		}
		u.Role = *req.Role
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(callerID, id string) error {
	if callerID == id {
		return apperr.Validationf("cannot delete own account")
	}
	return s.users.Delete(id)
}

func (s *UserService) ResetPassword(id, password string) error {
	if password == "" {
		return apperr.Validationf("password is required")
	}
	u, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}

func (s *UserService) ListUsers() ([]models.User, error) { return s.users.List() }

func (s *UserService) FindByID(id string) (*models.User, error) { return s.users.FindByID(id) }

// ValidateCredentials checks a login and records the login time on success.
func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	now := time.Now()
	if err := s.users.TouchLastLogin(u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	return u, nil
}
