package model

import (
	"fmt"
	"strings"
	"time"
)

type ContactMessage struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (in ContactInput) Normalize() ContactInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	return in
}

func (in ContactInput) Validate() error {
	var errs fieldErrors
	errs.required("name", in.Name)
	if in.Email == "" {
		errs.add("email", "email is required")
	} else if !IsValidEmail(in.Email) {
		errs.add("email", "email must be a valid address")
	}
	if in.Message == "" {
		errs.add("message", "message is required")
	} else if runeLen(in.Message) > MaxContactMessageLength {
		errs.add("message", fmt.Sprintf("message must be at most %d characters", MaxContactMessageLength))
	}
	return errs.err()
}

type CreateContactMessageParams struct {
	ID        string
	Input     ContactInput
	CreatedAt time.Time
}
