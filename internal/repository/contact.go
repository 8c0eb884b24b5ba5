package repository

import (
	"context"
	"time"

	"github.com/portfolio-dev/portfolio-server/internal/database"
	"github.com/portfolio-dev/portfolio-server/internal/model"
)

type ContactMessageRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]model.ContactMessage, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, params model.CreateContactMessageParams) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type contactMessageRepo struct {
	db database.DBTX
}

func NewContactMessageRepository(db database.DBTX) ContactMessageRepository {
	return &contactMessageRepo{db: db}
}

func (r *contactMessageRepo) FindAll(ctx context.Context, limit, offset int) ([]model.ContactMessage, error) {
	messages := []model.ContactMessage{}
	err := r.db.SelectContext(ctx, &messages, `
		SELECT * FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *contactMessageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contact_messages`)
	return count, err
}

func (r *contactMessageRepo) Create(ctx context.Context, params model.CreateContactMessageParams) (*model.ContactMessage, error) {
	var msg model.ContactMessage
	err := r.db.GetContext(ctx, &msg, `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.ID, params.Input.Name, params.Input.Email, params.Input.Message, params.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactMessageRepo) Delete(ctx context.Context, id string) (bool, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id))
}

func (r *contactMessageRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
