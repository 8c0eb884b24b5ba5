package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/model"
	"github.com/portfolio-dev/portfolio-server/internal/redis"
	"github.com/portfolio-dev/portfolio-server/internal/repository"
)

type Option func(*options)

type options struct {
	now   func() time.Time
	cache ContentCache
}

// WithClock replaces time.Now for timestamps written by the service.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCache enables read caching for public content.
func WithCache(cache ContentCache) Option {
	return func(o *options) {
		if cache != nil {
			o.cache = cache
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, cache: noCache{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ContentService owns reads and writes of the profile, projects and skills.
type ContentService struct {
	profileRepo repository.ProfileRepository
	projectRepo repository.ProjectRepository
	skillRepo   repository.SkillRepository
	icons       *IconSanitizer
	cache       ContentCache
	now         func() time.Time

	// fillMu orders cache fills against invalidations; generation counts
	// completed writes.
	fillMu     sync.Mutex
	generation uint64
}

func NewContentService(
	profileRepo repository.ProfileRepository,
	projectRepo repository.ProjectRepository,
	skillRepo repository.SkillRepository,
	opts ...Option,
) *ContentService {
	o := buildOptions(opts)
	return &ContentService{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
		icons:       NewIconSanitizer(),
		cache:       o.cache,
		now:         o.now,
	}
}

// parseID canonicalizes a path id; anything that is not a UUID is rejected
// before it reaches the database.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.InvalidInput("id", "must be a UUID")
	}
	return parsed.String(), nil
}

func (s *ContentService) timestamp() time.Time {
	return s.now().UTC()
}

func (s *ContentService) currentGeneration() uint64 {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	return s.generation
}

// fill caches a value loaded at generation gen. A write that committed after
// the load began may have invalidated the key already, so the stale snapshot
// is dropped instead of stored.
func (s *ContentService) fill(ctx context.Context, gen uint64, key string, value any) {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	if s.generation != gen {
		return
	}
	s.cache.Set(ctx, key, value)
}

// invalidate runs after a committed write.
func (s *ContentService) invalidate(ctx context.Context, keys ...string) {
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	s.generation++
	s.cache.Delete(ctx, keys...)
}

// Profile

func (s *ContentService) GetProfile(ctx context.Context) (*model.Profile, error) {
	var cached model.Profile
	if s.cache.Get(ctx, redis.ProfileKey, &cached) {
		return &cached, nil
	}

	gen := s.currentGeneration()
	profile, err := s.profileRepo.Find(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if profile == nil {
		profile = model.DefaultProfile()
	}

	s.fill(ctx, gen, redis.ProfileKey, profile)
	return profile, nil
}

func (s *ContentService) UpsertProfile(ctx context.Context, in model.ProfileInput) (*model.Profile, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Upsert(ctx, in, s.timestamp())
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.ProfileKey)
	log.Info().Msg("profile updated")
	return profile, nil
}

// Projects

func (s *ContentService) ListProjects(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	variant := ""
	if filter.Featured != nil {
		variant = strconv.FormatBool(*filter.Featured)
	}
	key := redis.ProjectsKey(variant)

	var cached []model.Project
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	gen := s.currentGeneration()
	projects, err := s.projectRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.fill(ctx, gen, key, projects)
	return projects, nil
}

func (s *ContentService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if project == nil {
		return nil, apperrors.NotFound("Project")
	}
	return project, nil
}

func (s *ContentService) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Create(ctx, model.CreateProjectParams{
		ID:        uuid.NewString(),
		Input:     in,
		CreatedAt: s.timestamp(),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.ProjectListKeys()...)
	log.Info().Str("projectId", project.ID).Msg("project created")
	return project, nil
}

// UpdateProject replaces every mutable field of an existing project.
func (s *ContentService) UpdateProject(ctx context.Context, id string, in model.ProjectInput) (*model.Project, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Update(ctx, model.UpdateProjectParams{
		ID:        id,
		Input:     in,
		UpdatedAt: s.timestamp(),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if project == nil {
		return nil, apperrors.NotFound("Project")
	}

	s.invalidate(ctx, redis.ProjectListKeys()...)
	log.Info().Str("projectId", id).Msg("project updated")
	return project, nil
}

func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Project")
	}

	s.invalidate(ctx, redis.ProjectListKeys()...)
	log.Info().Str("projectId", id).Msg("project deleted")
	return nil
}

// Skills

func (s *ContentService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var cached []model.Skill
	if s.cache.Get(ctx, redis.SkillsKey, &cached) {
		return cached, nil
	}

	gen := s.currentGeneration()
	skills, err := s.skillRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.fill(ctx, gen, redis.SkillsKey, skills)
	return skills, nil
}

func (s *ContentService) GetSkill(ctx context.Context, id string) (*model.Skill, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if skill == nil {
		return nil, apperrors.NotFound("Skill")
	}
	return skill, nil
}

// prepareSkill normalizes, sanitizes the icon and validates. An icon made
// only of disallowed markup ends up empty and fails validation.
func (s *ContentService) prepareSkill(in model.SkillInput) (model.SkillInput, error) {
	in = in.Normalize()
	in.Icon = s.icons.Sanitize(in.Icon)
	return in, in.Validate()
}

func (s *ContentService) CreateSkill(ctx context.Context, in model.SkillInput) (*model.Skill, error) {
	in, err := s.prepareSkill(in)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.Create(ctx, model.CreateSkillParams{
		ID:        uuid.NewString(),
		Input:     in,
		CreatedAt: s.timestamp(),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.invalidate(ctx, redis.SkillsKey)
	log.Info().Str("skillId", skill.ID).Msg("skill created")
	return skill, nil
}

func (s *ContentService) UpdateSkill(ctx context.Context, id string, in model.SkillInput) (*model.Skill, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}

	in, err = s.prepareSkill(in)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.Update(ctx, id, in)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if skill == nil {
		return nil, apperrors.NotFound("Skill")
	}

	s.invalidate(ctx, redis.SkillsKey)
	log.Info().Str("skillId", id).Msg("skill updated")
	return skill, nil
}

func (s *ContentService) DeleteSkill(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.skillRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Skill")
	}

	s.invalidate(ctx, redis.SkillsKey)
	log.Info().Str("skillId", id).Msg("skill deleted")
	return nil
}
