package services

import (
	"context"
	"errors"

	"propertymanager/internal/common"
	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.User, error)
	// EnsureAdmin creates the default administrator when the username is free.
	EnsureAdmin(ctx context.Context, username, password, email string) (bool, error)
}

type userService struct {
	repos      *repositories.Repositories
	tx         repositories.Transactor
	bcryptCost int
}

func NewUserService(repos *repositories.Repositories, tx repositories.Transactor) UserService {
	return &userService{repos: repos, tx: tx, bcryptCost: bcrypt.DefaultCost}
}

type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=64"`
	Password  string  `json:"password" validate:"required,min=5,max=72"`
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin manager user"`
	IsActive  *bool   `json:"isActive"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=72"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin manager user"`
	IsActive  *bool   `json:"isActive"`
}

func (s *userService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", common.Unexpected("hash password", err)
	}
	return string(hashed), nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Password:  hashed,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, common.Conflict("Username or email already in use", err)
		}
		return nil, repoError("User", "create user", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("User", "fetch user", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*models.User, error) {
	var hashed string
	if req.Password != nil {
		var err error
		if hashed, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err := s.tx.WithinTx(ctx, func(r *repositories.Repositories) error {
		existing, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Username != nil {
			existing.Username = *req.Username
		}
		if hashed != "" {
			existing.Password = hashed
		}
		if req.Email != nil {
			existing.Email = *req.Email
		}
		if req.FirstName != nil {
			existing.FirstName = req.FirstName
		}
		if req.LastName != nil {
			existing.LastName = req.LastName
		}
		if req.Role != nil {
			existing.Role = *req.Role
		}
		if req.IsActive != nil {
			existing.IsActive = *req.IsActive
		}

		if err := r.Users.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, common.Conflict("Username or email already in use", err)
		}
		return nil, repoError("User", "update user", err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repos.Users.Delete(ctx, id); err != nil {
		return deleteError("User", err)
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, common.Unexpected("fetch users", err)
	}
	return users, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	_, err := s.repos.Users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	_, err = s.Create(ctx, &CreateUserRequest{
		Username: username,
		Password: password,
		Email:    email,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// another instance seeded it first
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
