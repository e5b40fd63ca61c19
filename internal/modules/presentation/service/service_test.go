package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/modules/presentation/dto"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	lookups int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) addUser(role string) *entity.User {
	user := &entity.User{ID: uuid.New(), Name: "user", Email: uuid.NewString() + "@tcc.local", Role: role}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.lookups++
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type fakePresentationRepo struct {
	presentations map[uuid.UUID]*entity.Presentation
	seq           int
}

func newFakePresentationRepo() *fakePresentationRepo {
	return &fakePresentationRepo{presentations: make(map[uuid.UUID]*entity.Presentation)}
}

func (r *fakePresentationRepo) Create(_ context.Context, p *entity.Presentation) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.seq++
	p.CreatedAt = time.Unix(int64(r.seq), 0)
	copied := *p
	r.presentations[p.ID] = &copied
	return nil
}

func (r *fakePresentationRepo) sorted(filter func(*entity.Presentation) bool) []*entity.Presentation {
	var out []*entity.Presentation
	for _, p := range r.presentations {
		if filter(p) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakePresentationRepo) FindAll(_ context.Context) ([]*entity.Presentation, error) {
	return r.sorted(func(*entity.Presentation) bool { return true }), nil
}

func (r *fakePresentationRepo) FindByAdvisor(_ context.Context, advisorID uuid.UUID) ([]*entity.Presentation, error) {
	return r.sorted(func(p *entity.Presentation) bool {
		return p.AdvisorID == advisorID || (p.CoadvisorID != nil && *p.CoadvisorID == advisorID)
	}), nil
}

func (r *fakePresentationRepo) FindByStudent(_ context.Context, studentID uuid.UUID) ([]*entity.Presentation, error) {
	return r.sorted(func(p *entity.Presentation) bool { return p.StudentID == studentID }), nil
}

func (r *fakePresentationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Presentation, error) {
	p, ok := r.presentations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePresentationRepo) Update(_ context.Context, p *entity.Presentation) error {
	copied := *p
	r.presentations[p.ID] = &copied
	return nil
}

func (r *fakePresentationRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.presentations[id]; !ok {
		return 0, nil
	}
	delete(r.presentations, id)
	return 1, nil
}

func setup() (*fakePresentationRepo, *fakeUserRepo, PresentationService) {
	presentations := newFakePresentationRepo()
	users := newFakeUserRepo()
	return presentations, users, NewPresentationService(presentations, users)
}

func TestPresentationCreate(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)

	presentation, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title:     "X",
		Semester:  "1/25",
		StudentID: student.ID,
		AdvisorID: advisor.ID,
	})
	require.NoError(t, err)
	require.Equal(t, entity.PresentationStatusPending, presentation.Status)
	require.Equal(t, student.ID, presentation.StudentID)
	require.Nil(t, presentation.CoadvisorID)
}

func TestPresentationCreateRoleChecks(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)
	secretariat := users.addUser(entity.RoleSecretariat)

	tests := []struct {
		name  string
		input dto.CreatePresentationInput
		want  error
	}{
		{
			name:  "advisor as student",
			input: dto.CreatePresentationInput{Title: "X", Semester: "1/25", StudentID: advisor.ID, AdvisorID: advisor.ID},
			want:  apperror.ErrBadRequest,
		},
		{
			name:  "student as advisor",
			input: dto.CreatePresentationInput{Title: "X", Semester: "1/25", StudentID: student.ID, AdvisorID: student.ID},
			want:  apperror.ErrBadRequest,
		},
		{
			name:  "secretariat as co-advisor",
			input: dto.CreatePresentationInput{Title: "X", Semester: "1/25", StudentID: student.ID, AdvisorID: advisor.ID, CoadvisorID: &secretariat.ID},
			want:  apperror.ErrBadRequest,
		},
		{
			name:  "unknown student",
			input: dto.CreatePresentationInput{Title: "X", Semester: "1/25", StudentID: uuid.New(), AdvisorID: advisor.ID},
			want:  apperror.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPresentationCreateWithCoadvisor(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)
	coadvisor := users.addUser(entity.RoleAdvisor)

	presentation, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title:       "X",
		Semester:    "2/25",
		StudentID:   student.ID,
		AdvisorID:   advisor.ID,
		CoadvisorID: &coadvisor.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, presentation.CoadvisorID)
	require.Equal(t, coadvisor.ID, *presentation.CoadvisorID)
}

func TestPresentationUpdateRevalidatesOnlyChangedRefs(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)
	coadvisor := users.addUser(entity.RoleAdvisor)

	presentation, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title:       "X",
		Semester:    "1/25",
		StudentID:   student.ID,
		AdvisorID:   advisor.ID,
		CoadvisorID: &coadvisor.ID,
	})
	require.NoError(t, err)

	// Re-supplying the stored references must not trigger any user lookup.
	users.lookups = 0
	_, err = svc.Update(context.Background(), presentation.ID, dto.UpdatePresentationInput{
		StudentID:   &student.ID,
		AdvisorID:   &advisor.ID,
		CoadvisorID: &coadvisor.ID,
	})
	require.NoError(t, err)
	require.Zero(t, users.lookups)

	// A changed advisor is validated again.
	other := users.addUser(entity.RoleStudent)
	_, err = svc.Update(context.Background(), presentation.ID, dto.UpdatePresentationInput{
		AdvisorID: &other.ID,
	})
	require.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestPresentationUpdateMergesFields(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)

	presentation, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title:     "Old title",
		Semester:  "1/25",
		StudentID: student.ID,
		AdvisorID: advisor.ID,
	})
	require.NoError(t, err)

	status := entity.PresentationStatusApproved
	title := "New title"
	updated, err := svc.Update(context.Background(), presentation.ID, dto.UpdatePresentationInput{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.Equal(t, entity.PresentationStatusApproved, updated.Status)
	require.Equal(t, "1/25", updated.Semester)
}

func TestPresentationStatusFreeTransitions(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)

	presentation, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title:     "X",
		Semester:  "1/25",
		StudentID: student.ID,
		AdvisorID: advisor.ID,
		Status:    entity.PresentationStatusCompleted,
	})
	require.NoError(t, err)

	// Any status can follow any other; no transition table is enforced.
	status := entity.PresentationStatusPending
	updated, err := svc.Update(context.Background(), presentation.ID, dto.UpdatePresentationInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, entity.PresentationStatusPending, updated.Status)
}

func TestPresentationAdvisorView(t *testing.T) {
	_, users, svc := setup()
	student := users.addUser(entity.RoleStudent)
	advisor := users.addUser(entity.RoleAdvisor)
	coadvisor := users.addUser(entity.RoleAdvisor)

	first, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title: "A", Semester: "1/25", StudentID: student.ID, AdvisorID: advisor.ID,
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), dto.CreatePresentationInput{
		Title: "B", Semester: "1/25", StudentID: student.ID, AdvisorID: coadvisor.ID, CoadvisorID: &advisor.ID,
	})
	require.NoError(t, err)

	// The advisor view covers both primary and co-advisor roles, newest first.
	list, err := svc.GetByAdvisor(context.Background(), advisor.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	mine, err := svc.GetByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestPresentationDeleteNotFound(t *testing.T) {
	_, _, svc := setup()
	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
