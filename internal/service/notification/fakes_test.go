package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/resumehub/notify-api/internal/model"
	apperrors "github.com/resumehub/notify-api/pkg/errors"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NotFound("profile", nil)
	}
	return p, nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.EmailOrEmpty() == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfileRepo) ListWithEmail(_ context.Context) ([]*model.Profile, error) {
	var out []*model.Profile
	for _, p := range r.profiles {
		if p.EmailOrEmpty() != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.NotificationSettings
	gets int
}

func newFakeSettingsRepo(rows ...*model.NotificationSettings) *fakeSettingsRepo {
	repo := &fakeSettingsRepo{rows: make(map[uuid.UUID]*model.NotificationSettings)}
	for _, row := range rows {
		repo.rows[row.UserID] = row
	}
	return repo
}

func (r *fakeSettingsRepo) Get(_ context.Context, userID uuid.UUID) (*model.NotificationSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	row, ok := r.rows[userID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *model.NotificationSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *settings
	r.rows[settings.UserID] = &copied
	return nil
}

func strptr(s string) *string {
	return &s
}

func profileWithEmail(name, email string) *model.Profile {
	p := &model.Profile{Name: name, Role: model.RoleUser}
	p.ID = uuid.New()
	if email != "" {
		p.Email = strptr(email)
	}
	return p
}
