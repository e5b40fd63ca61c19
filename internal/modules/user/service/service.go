package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/user/dto"
	"anoa.com/tccscheduler/internal/modules/user/repository"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Create(ctx context.Context, input dto.CreateUserInput) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserInput) (*entity.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleStudent
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*entity.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperror.Conflict("email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperror.Conflict("user is still referenced by presentations or events")
		}
		return err
	}
	if affected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}
