// Package mail relays operator notifications.
package mail

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Message is one notification addressed to the operator inbox.
type Message struct {
	Subject string
	ReplyTo string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log. It stands in when no mail relay is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Info().
		Str("subject", msg.Subject).
		Str("replyTo", msg.ReplyTo).
		Str("body", msg.Text).
		Msg("mail relay not configured, message logged")
	return nil
}
