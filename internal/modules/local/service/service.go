package service

import (
	"context"
	"errors"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/local/dto"
	"anoa.com/tccscheduler/internal/modules/local/repository"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCapacity = 30

type LocalService interface {
	Create(ctx context.Context, input dto.CreateLocalInput) (*entity.Local, error)
	GetAll(ctx context.Context) ([]*entity.Local, error)
	GetActive(ctx context.Context) ([]*entity.Local, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Local, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateLocalInput) (*entity.Local, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type localService struct {
	repo repository.LocalRepository
}

func NewLocalService(repo repository.LocalRepository) LocalService {
	return &localService{repo: repo}
}

func (s *localService) Create(ctx context.Context, input dto.CreateLocalInput) (*entity.Local, error) {
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, apperror.Conflict("a local with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	capacity := defaultCapacity
	if input.Capacity != nil {
		capacity = *input.Capacity
	}

	local := &entity.Local{
		Name:        input.Name,
		Description: input.Description,
		Capacity:    capacity,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, local); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a local with this name already exists")
		}
		return nil, err
	}

	return local, nil
}

func (s *localService) GetAll(ctx context.Context) ([]*entity.Local, error) {
	return s.repo.FindAll(ctx)
}

func (s *localService) GetActive(ctx context.Context) ([]*entity.Local, error) {
	return s.repo.FindActive(ctx)
}

func (s *localService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Local, error) {
	local, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("local not found")
		}
		return nil, err
	}
	return local, nil
}

func (s *localService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateLocalInput) (*entity.Local, error) {
	local, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Uniqueness is only re-checked when the name actually changes, so a
	// local can be "renamed" to its own current name.
	if input.Name != nil && *input.Name != local.Name {
		if _, err := s.repo.FindByName(ctx, *input.Name); err == nil {
			return nil, apperror.Conflict("a local with this name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		local.Name = *input.Name
	}

	if input.Description != nil {
		local.Description = input.Description
	}
	if input.Capacity != nil {
		local.Capacity = *input.Capacity
	}
	if input.IsActive != nil {
		local.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, local); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("a local with this name already exists")
		}
		return nil, err
	}

	return local, nil
}

func (s *localService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("local not found")
	}
	return nil
}
