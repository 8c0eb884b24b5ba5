package handler

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/portfolio-dev/portfolio-server/internal/mail"
	"github.com/portfolio-dev/portfolio-server/internal/media"
	"github.com/portfolio-dev/portfolio-server/internal/model"
)

// In-memory repositories backing the router tests.

type memoryProfileRepo struct {
	mu      sync.Mutex
	profile *model.Profile
}

func (r *memoryProfileRepo) Find(context.Context) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil {
		return nil, nil
	}
	p := *r.profile
	return &p, nil
}

func (r *memoryProfileRepo) Upsert(_ context.Context, in model.ProfileInput, at time.Time) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := at
	if r.profile != nil && r.profile.CreatedAt != nil {
		created = *r.profile.CreatedAt
	}
	updated := at
	r.profile = &model.Profile{
		ID:           model.ProfileSingletonID,
		FullName:     in.FullName,
		About:        in.About,
		Email:        in.Email,
		GitHub:       in.GitHub,
		LinkedIn:     in.LinkedIn,
		ProfileImage: in.ProfileImage,
		CreatedAt:    &created,
		UpdatedAt:    &updated,
	}
	p := *r.profile
	return &p, nil
}

type memoryProjectRepo struct {
	mu       sync.Mutex
	projects map[string]model.Project
}

func newMemoryProjectRepo() *memoryProjectRepo {
	return &memoryProjectRepo{projects: map[string]model.Project{}}
}

func (r *memoryProjectRepo) FindAll(_ context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Project{}
	for _, p := range r.projects {
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memoryProjectRepo) FindByID(_ context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryProjectRepo) Create(_ context.Context, params model.CreateProjectParams) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := params.Input
	p := model.Project{
		ID:           params.ID,
		Title:        in.Title,
		Description:  in.Description,
		Images:       in.Images,
		Technologies: in.Technologies,
		Link:         in.Link,
		GitHub:       in.GitHub,
		Featured:     in.Featured,
		CreatedAt:    params.CreatedAt,
		UpdatedAt:    params.CreatedAt,
	}
	r.projects[p.ID] = p
	return &p, nil
}

func (r *memoryProjectRepo) Update(_ context.Context, params model.UpdateProjectParams) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[params.ID]
	if !ok {
		return nil, nil
	}
	in := params.Input
	p.Title, p.Description = in.Title, in.Description
	p.Images, p.Technologies = in.Images, in.Technologies
	p.Link, p.GitHub, p.Featured = in.Link, in.GitHub, in.Featured
	p.UpdatedAt = params.UpdatedAt
	r.projects[p.ID] = p
	return &p, nil
}

func (r *memoryProjectRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

type memorySkillRepo struct {
	mu     sync.Mutex
	skills map[string]model.Skill
}

func newMemorySkillRepo() *memorySkillRepo {
	return &memorySkillRepo{skills: map[string]model.Skill{}}
}

func (r *memorySkillRepo) FindAll(context.Context) ([]model.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Skill{}
	for _, s := range r.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memorySkillRepo) FindByID(_ context.Context, id string) (*model.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.skills[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySkillRepo) Create(_ context.Context, params model.CreateSkillParams) (*model.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := model.Skill{ID: params.ID, Name: params.Input.Name, Icon: params.Input.Icon, CreatedAt: params.CreatedAt}
	r.skills[s.ID] = s
	return &s, nil
}

func (r *memorySkillRepo) Update(_ context.Context, id string, in model.SkillInput) (*model.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.skills[id]
	if !ok {
		return nil, nil
	}
	s.Name, s.Icon = in.Name, in.Icon
	r.skills[id] = s
	return &s, nil
}

func (r *memorySkillRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skills[id]; !ok {
		return false, nil
	}
	delete(r.skills, id)
	return true, nil
}

type memoryContactRepo struct {
	mu       sync.Mutex
	messages []model.ContactMessage
}

func (r *memoryContactRepo) FindAll(_ context.Context, limit, offset int) ([]model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.ContactMessage{}
	for i := len(r.messages) - 1; i >= 0; i-- {
		out = append(out, r.messages[i])
	}
	if offset >= len(out) {
		return []model.ContactMessage{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryContactRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages), nil
}

func (r *memoryContactRepo) Create(_ context.Context, params model.CreateContactMessageParams) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := model.ContactMessage{
		ID:        params.ID,
		Name:      params.Input.Name,
		Email:     params.Input.Email,
		Message:   params.Input.Message,
		CreatedAt: params.CreatedAt,
	}
	r.messages = append(r.messages, m)
	return &m, nil
}

func (r *memoryContactRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryContactRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	var removed int64
	for _, m := range r.messages {
		if m.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return removed, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingUploader struct {
	mu       sync.Mutex
	objects  []media.Object
	data     [][]byte
	seekable []bool
	err      error
}

func (u *recordingUploader) Upload(_ context.Context, obj media.Object) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	_, canSeek := obj.Body.(io.Seeker)
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	u.objects = append(u.objects, obj)
	u.data = append(u.data, data)
	u.seekable = append(u.seekable, canSeek)
	return "https://media.example.com/profile_images/" + obj.Name, nil
}

var errRelayDown = errors.New("relay down")

// tickClock advances one second per reading so creation order is strict.
type tickClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
