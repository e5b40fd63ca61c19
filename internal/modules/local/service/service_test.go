package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/local/dto"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLocalRepo struct {
	locals map[uuid.UUID]*entity.Local
}

func newFakeLocalRepo() *fakeLocalRepo {
	return &fakeLocalRepo{locals: make(map[uuid.UUID]*entity.Local)}
}

func (r *fakeLocalRepo) Create(_ context.Context, local *entity.Local) error {
	if local.ID == uuid.Nil {
		local.ID = uuid.New()
	}
	for _, existing := range r.locals {
		if existing.Name == local.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *local
	r.locals[local.ID] = &copied
	return nil
}

func (r *fakeLocalRepo) FindAll(_ context.Context) ([]*entity.Local, error) {
	var out []*entity.Local
	for _, l := range r.locals {
		copied := *l
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeLocalRepo) FindActive(_ context.Context) ([]*entity.Local, error) {
	all, _ := r.FindAll(context.Background())
	var out []*entity.Local
	for _, l := range all {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLocalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Local, error) {
	l, ok := r.locals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLocalRepo) FindByName(_ context.Context, name string) (*entity.Local, error) {
	for _, l := range r.locals {
		if l.Name == name {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLocalRepo) Update(_ context.Context, local *entity.Local) error {
	copied := *local
	r.locals[local.ID] = &copied
	return nil
}

func (r *fakeLocalRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.locals[id]; !ok {
		return 0, nil
	}
	delete(r.locals, id)
	return 1, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestLocalCreateDefaults(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	local, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala 101"})
	require.NoError(t, err)
	require.Equal(t, "Sala 101", local.Name)
	require.Equal(t, 30, local.Capacity)
	require.True(t, local.IsActive)
}

func TestLocalCreateDuplicateName(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	_, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala 101"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala 101"})
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLocalRename(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	a, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala A"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala B"})
	require.NoError(t, err)

	// Renaming B to A's name collides.
	_, err = svc.Update(context.Background(), b.ID, dto.UpdateLocalInput{Name: strPtr("Sala A")})
	require.ErrorIs(t, err, apperror.ErrConflict)

	// Renaming A to its own current name is not a self-conflict.
	updated, err := svc.Update(context.Background(), a.ID, dto.UpdateLocalInput{Name: strPtr("Sala A")})
	require.NoError(t, err)
	require.Equal(t, "Sala A", updated.Name)
}

func TestLocalPartialUpdate(t *testing.T) {
	repo := newFakeLocalRepo()
	svc := NewLocalService(repo)

	local, err := svc.Create(context.Background(), dto.CreateLocalInput{
		Name:        "Lab 3",
		Description: strPtr("computer lab"),
		Capacity:    intPtr(20),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), local.ID, dto.UpdateLocalInput{
		Capacity: intPtr(25),
	})
	require.NoError(t, err)
	require.Equal(t, 25, updated.Capacity)
	require.Equal(t, "Lab 3", updated.Name)
	require.NotNil(t, updated.Description)
	require.Equal(t, "computer lab", *updated.Description)
}

func TestLocalActiveFilter(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	active, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Auditorio"})
	require.NoError(t, err)
	disabled, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala velha"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), disabled.ID, dto.UpdateLocalInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	locals, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	require.Len(t, locals, 1)
	require.Equal(t, active.ID, locals[0].ID)
}

func TestLocalReadsAreStable(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	local, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala 200"})
	require.NoError(t, err)

	first, err := svc.GetByID(context.Background(), local.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(context.Background(), local.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLocalNotFound(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Update(context.Background(), uuid.New(), dto.UpdateLocalInput{Name: strPtr("x")})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	err = svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLocalDelete(t *testing.T) {
	svc := NewLocalService(newFakeLocalRepo())

	local, err := svc.Create(context.Background(), dto.CreateLocalInput{Name: "Sala 300"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), local.ID))

	_, err = svc.GetByID(context.Background(), local.ID)
	require.True(t, errors.Is(err, apperror.ErrNotFound))
}
