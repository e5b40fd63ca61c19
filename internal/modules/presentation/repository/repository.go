package repository

import (
	"context"

	"anoa.com/tccscheduler/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresentationRepository interface {
	Create(ctx context.Context, presentation *entity.Presentation) error
	FindAll(ctx context.Context) ([]*entity.Presentation, error)
	FindByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]*entity.Presentation, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Presentation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Presentation, error)
	Update(ctx context.Context, presentation *entity.Presentation) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type presentationRepository struct {
	db *gorm.DB
}

func NewPresentationRepository(db *gorm.DB) PresentationRepository {
	return &presentationRepository{db: db}
}

func (r *presentationRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Student").
		Preload("Advisor").
		Preload("Coadvisor")
}

func (r *presentationRepository) Create(ctx context.Context, presentation *entity.Presentation) error {
	return r.db.WithContext(ctx).Create(presentation).Error
}

func (r *presentationRepository) FindAll(ctx context.Context) ([]*entity.Presentation, error) {
	var presentations []*entity.Presentation
	if err := r.withRelations(ctx).Order("created_at DESC").Find(&presentations).Error; err != nil {
		return nil, err
	}
	return presentations, nil
}

// FindByAdvisor matches presentations where the user supervises as primary
// advisor or as co-advisor.
func (r *presentationRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID) ([]*entity.Presentation, error) {
	var presentations []*entity.Presentation
	if err := r.withRelations(ctx).
		Where("advisor_id = ? OR coadvisor_id = ?", advisorID, advisorID).
		Order("created_at DESC").
		Find(&presentations).Error; err != nil {
		return nil, err
	}
	return presentations, nil
}

func (r *presentationRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Presentation, error) {
	var presentations []*entity.Presentation
	if err := r.withRelations(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&presentations).Error; err != nil {
		return nil, err
	}
	return presentations, nil
}

func (r *presentationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Presentation, error) {
	var presentation entity.Presentation
	if err := r.withRelations(ctx).First(&presentation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &presentation, nil
}

func (r *presentationRepository) Update(ctx context.Context, presentation *entity.Presentation) error {
	// Preloaded user rows must not be written back with the record.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(presentation).Error
}

func (r *presentationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Presentation{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
