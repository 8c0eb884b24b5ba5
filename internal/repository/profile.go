package repository

import (
	"context"
	"time"

	"github.com/portfolio-dev/portfolio-server/internal/database"
	"github.com/portfolio-dev/portfolio-server/internal/model"
)

type ProfileRepository interface {
	// Find returns nil when the profile was never saved.
	Find(ctx context.Context) (*model.Profile, error)
	Upsert(ctx context.Context, in model.ProfileInput, at time.Time) (*model.Profile, error)
}

type profileRepo struct {
	db database.DBTX
}

func NewProfileRepository(db database.DBTX) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Find(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `
		SELECT * FROM profile WHERE id = $1
	`, model.ProfileSingletonID)
	return HandleNotFound(&profile, err)
}

func (r *profileRepo) Upsert(ctx context.Context, in model.ProfileInput, at time.Time) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `
		INSERT INTO profile (id, full_name, about, email, github, linkedin, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			about = EXCLUDED.about,
			email = EXCLUDED.email,
			github = EXCLUDED.github,
			linkedin = EXCLUDED.linkedin,
			profile_image = EXCLUDED.profile_image,
			updated_at = EXCLUDED.updated_at
		RETURNING *
	`, model.ProfileSingletonID, in.FullName, in.About, in.Email, in.GitHub, in.LinkedIn, in.ProfileImage, at)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
