package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/mail"
	"github.com/portfolio-dev/portfolio-server/internal/model"
	"github.com/portfolio-dev/portfolio-server/internal/repository"
)

// ContactService stores contact form submissions and relays them to the operator.
type ContactService struct {
	repo   repository.ContactMessageRepository
	mailer mail.Mailer
	now    func() time.Time
}

func NewContactService(repo repository.ContactMessageRepository, mailer mail.Mailer, opts ...Option) *ContactService {
	o := buildOptions(opts)
	return &ContactService{repo: repo, mailer: mailer, now: o.now}
}

// Submit persists first so a relay outage never loses a message.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.repo.Create(ctx, model.CreateContactMessageParams{
		ID:        uuid.NewString(),
		Input:     in,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	notification, err := mail.ContactNotification(msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	if err != nil {
		return nil, apperrors.Internal("Failed to render message").WithCause(err)
	}
	if err := s.mailer.Send(ctx, notification); err != nil {
		log.Error().Err(err).Str("contactMessageId", msg.ID).Msg("failed to relay contact message")
		return nil, apperrors.External("mail", err)
	}

	log.Info().Str("contactMessageId", msg.ID).Msg("contact message relayed")
	return msg, nil
}

type ContactPage struct {
	Items []model.ContactMessage `json:"items"`
	Total int                    `json:"total"`
}

func (s *ContactService) List(ctx context.Context, limit, offset int) (*ContactPage, error) {
	items, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return &ContactPage{Items: items, Total: total}, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Contact message")
	}
	return nil
}
