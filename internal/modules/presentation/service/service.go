package service

import (
	"context"
	"errors"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/presentation/dto"
	"anoa.com/tccscheduler/internal/modules/presentation/repository"
	userRepo "anoa.com/tccscheduler/internal/modules/user/repository"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresentationService interface {
	Create(ctx context.Context, input dto.CreatePresentationInput) (*entity.Presentation, error)
	GetAll(ctx context.Context) ([]*entity.Presentation, error)
	GetByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]*entity.Presentation, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Presentation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Presentation, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdatePresentationInput) (*entity.Presentation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type presentationService struct {
	repo  repository.PresentationRepository
	users userRepo.UserRepository
}

func NewPresentationService(repo repository.PresentationRepository, users userRepo.UserRepository) PresentationService {
	return &presentationService{repo: repo, users: users}
}

func (s *presentationService) requireRole(ctx context.Context, id uuid.UUID, role, notFoundMsg, roleMsg string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(notFoundMsg)
		}
		return err
	}
	if user.Role != role {
		return apperror.BadRequest(roleMsg)
	}
	return nil
}

func (s *presentationService) validateStudent(ctx context.Context, id uuid.UUID) error {
	return s.requireRole(ctx, id, entity.RoleStudent, "student not found", "selected user is not a student")
}

func (s *presentationService) validateAdvisor(ctx context.Context, id uuid.UUID) error {
	return s.requireRole(ctx, id, entity.RoleAdvisor, "advisor not found", "the advisor must have the advisor role")
}

func (s *presentationService) validateCoadvisor(ctx context.Context, id uuid.UUID) error {
	return s.requireRole(ctx, id, entity.RoleAdvisor, "co-advisor not found", "the co-advisor must have the advisor role")
}

func (s *presentationService) Create(ctx context.Context, input dto.CreatePresentationInput) (*entity.Presentation, error) {
	if err := s.validateStudent(ctx, input.StudentID); err != nil {
		return nil, err
	}
	if err := s.validateAdvisor(ctx, input.AdvisorID); err != nil {
		return nil, err
	}
	if input.CoadvisorID != nil {
		if err := s.validateCoadvisor(ctx, *input.CoadvisorID); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = entity.PresentationStatusPending
	}

	presentation := &entity.Presentation{
		Title:       input.Title,
		Description: input.Description,
		Semester:    input.Semester,
		Status:      status,
		StudentID:   input.StudentID,
		AdvisorID:   input.AdvisorID,
		CoadvisorID: input.CoadvisorID,
	}

	if err := s.repo.Create(ctx, presentation); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, presentation.ID)
}

func (s *presentationService) GetAll(ctx context.Context) ([]*entity.Presentation, error) {
	return s.repo.FindAll(ctx)
}

func (s *presentationService) GetByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]*entity.Presentation, error) {
	return s.repo.FindByAdvisor(ctx, advisorID)
}

func (s *presentationService) GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Presentation, error) {
	return s.repo.FindByStudent(ctx, studentID)
}

func (s *presentationService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Presentation, error) {
	presentation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("presentation not found")
		}
		return nil, err
	}
	return presentation, nil
}

func (s *presentationService) Update(ctx context.Context, id uuid.UUID, input dto.UpdatePresentationInput) (*entity.Presentation, error) {
	presentation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Role checks run only when the reference actually changes.
	if input.StudentID != nil && *input.StudentID != presentation.StudentID {
		if err := s.validateStudent(ctx, *input.StudentID); err != nil {
			return nil, err
		}
		presentation.StudentID = *input.StudentID
	}

	if input.AdvisorID != nil && *input.AdvisorID != presentation.AdvisorID {
		if err := s.validateAdvisor(ctx, *input.AdvisorID); err != nil {
			return nil, err
		}
		presentation.AdvisorID = *input.AdvisorID
	}

	if input.CoadvisorID != nil {
		changed := presentation.CoadvisorID == nil || *presentation.CoadvisorID != *input.CoadvisorID
		if changed {
			if err := s.validateCoadvisor(ctx, *input.CoadvisorID); err != nil {
				return nil, err
			}
			presentation.CoadvisorID = input.CoadvisorID
		}
	}

	if input.Title != nil {
		presentation.Title = *input.Title
	}
	if input.Description != nil {
		presentation.Description = input.Description
	}
	if input.Semester != nil {
		presentation.Semester = *input.Semester
	}
	if input.Status != nil {
		presentation.Status = *input.Status
	}

	if err := s.repo.Update(ctx, presentation); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *presentationService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("presentation not found")
	}
	return nil
}
