package model

import (
	"strings"
	"time"
)

// Skill.Icon is stored already sanitized; it is either an emoji or a small
// fragment of allowed markup.
type Skill struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type SkillInput struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (in SkillInput) Normalize() SkillInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	return in
}

func (in SkillInput) Validate() error {
	var errs fieldErrors
	errs.required("name", in.Name)
	errs.required("icon", in.Icon)
	return errs.err()
}

type CreateSkillParams struct {
	ID        string
	Input     SkillInput
	CreatedAt time.Time
}
