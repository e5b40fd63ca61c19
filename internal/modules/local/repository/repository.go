package repository

import (
	"context"

	"anoa.com/tccscheduler/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocalRepository interface {
	Create(ctx context.Context, local *entity.Local) error
	FindAll(ctx context.Context) ([]*entity.Local, error)
	FindActive(ctx context.Context) ([]*entity.Local, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Local, error)
	FindByName(ctx context.Context, name string) (*entity.Local, error)
	Update(ctx context.Context, local *entity.Local) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type localRepository struct {
	db *gorm.DB
}

func NewLocalRepository(db *gorm.DB) LocalRepository {
	return &localRepository{db: db}
}

func (r *localRepository) Create(ctx context.Context, local *entity.Local) error {
	return r.db.WithContext(ctx).Create(local).Error
}

func (r *localRepository) FindAll(ctx context.Context) ([]*entity.Local, error) {
	var locals []*entity.Local
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&locals).Error; err != nil {
		return nil, err
	}
	return locals, nil
}

func (r *localRepository) FindActive(ctx context.Context) ([]*entity.Local, error) {
	var locals []*entity.Local
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&locals).Error; err != nil {
		return nil, err
	}
	return locals, nil
}

func (r *localRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Local, error) {
	var local entity.Local
	if err := r.db.WithContext(ctx).First(&local, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &local, nil
}

func (r *localRepository) FindByName(ctx context.Context, name string) (*entity.Local, error) {
	var local entity.Local
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&local).Error; err != nil {
		return nil, err
	}
	return &local, nil
}

func (r *localRepository) Update(ctx context.Context, local *entity.Local) error {
	return r.db.WithContext(ctx).Save(local).Error
}

func (r *localRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Local{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
