package repository

import (
	"context"

	"github.com/portfolio-dev/portfolio-server/internal/database"
	"github.com/portfolio-dev/portfolio-server/internal/model"
)

type SkillRepository interface {
	FindAll(ctx context.Context) ([]model.Skill, error)
	FindByID(ctx context.Context, id string) (*model.Skill, error)
	Create(ctx context.Context, params model.CreateSkillParams) (*model.Skill, error)
	// Update returns nil when no skill has the given id.
	Update(ctx context.Context, id string, in model.SkillInput) (*model.Skill, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type skillRepo struct {
	db database.DBTX
}

func NewSkillRepository(db database.DBTX) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) FindAll(ctx context.Context) ([]model.Skill, error) {
	skills := []model.Skill{}
	err := r.db.SelectContext(ctx, &skills, `
		SELECT * FROM skills
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepo) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.GetContext(ctx, &skill, `
		SELECT * FROM skills WHERE id = $1
	`, id)
	return HandleNotFound(&skill, err)
}

func (r *skillRepo) Create(ctx context.Context, params model.CreateSkillParams) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.GetContext(ctx, &skill, `
		INSERT INTO skills (id, name, icon, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.ID, params.Input.Name, params.Input.Icon, params.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) Update(ctx context.Context, id string, in model.SkillInput) (*model.Skill, error) {
	var skill model.Skill
	err := r.db.GetContext(ctx, &skill, `
		UPDATE skills SET name = $2, icon = $3
		WHERE id = $1
		RETURNING *
	`, id, in.Name, in.Icon)
	return HandleNotFound(&skill, err)
}

func (r *skillRepo) Delete(ctx context.Context, id string) (bool, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id))
}
