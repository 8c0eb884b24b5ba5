package repository

import (
	"context"

	"github.com/lib/pq"

	"github.com/portfolio-dev/portfolio-server/internal/database"
	"github.com/portfolio-dev/portfolio-server/internal/model"
)

type ProjectRepository interface {
	FindAll(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error)
	// Update returns nil when no project has the given id.
	Update(ctx context.Context, params model.UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type projectRepo struct {
	db database.DBTX
}

func NewProjectRepository(db database.DBTX) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) FindAll(ctx context.Context, filter model.ProjectFilter) ([]model.Project, error) {
	projects := []model.Project{}
	var err error
	if filter.Featured != nil {
		err = r.db.SelectContext(ctx, &projects, `
			SELECT * FROM projects
			WHERE featured = $1
			ORDER BY created_at DESC, id DESC
		`, *filter.Featured)
	} else {
		err = r.db.SelectContext(ctx, &projects, `
			SELECT * FROM projects
			ORDER BY created_at DESC, id DESC
		`)
	}
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.GetContext(ctx, &project, `
		SELECT * FROM projects WHERE id = $1
	`, id)
	return HandleNotFound(&project, err)
}

func (r *projectRepo) Create(ctx context.Context, params model.CreateProjectParams) (*model.Project, error) {
	in := params.Input
	var project model.Project
	err := r.db.GetContext(ctx, &project, `
		INSERT INTO projects (id, title, description, images, technologies, link, github, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING *
	`, params.ID, in.Title, in.Description, pq.Array(in.Images), pq.Array(in.Technologies),
		in.Link, in.GitHub, in.Featured, params.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Update(ctx context.Context, params model.UpdateProjectParams) (*model.Project, error) {
	in := params.Input
	var project model.Project
	err := r.db.GetContext(ctx, &project, `
		UPDATE projects SET
			title = $2,
			description = $3,
			images = $4,
			technologies = $5,
			link = $6,
			github = $7,
			featured = $8,
			updated_at = $9
		WHERE id = $1
		RETURNING *
	`, params.ID, in.Title, in.Description, pq.Array(in.Images), pq.Array(in.Technologies),
		in.Link, in.GitHub, in.Featured, params.UpdatedAt)
	return HandleNotFound(&project, err)
}

func (r *projectRepo) Delete(ctx context.Context, id string) (bool, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id))
}
