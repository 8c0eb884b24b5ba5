package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Project struct {
	ID           string         `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	Images       pq.StringArray `db:"images" json:"images"`
	Technologies pq.StringArray `db:"technologies" json:"technologies"`
	Link         string         `db:"link" json:"link"`
	GitHub       string         `db:"github" json:"github"`
	Featured     bool           `db:"featured" json:"featured"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	GitHub       string   `json:"github"`
	Featured     bool     `json:"featured"`
}

func (in ProjectInput) Normalize() ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Images = compact(in.Images)
	in.Technologies = compact(in.Technologies)
	in.Link = strings.TrimSpace(in.Link)
	in.GitHub = strings.TrimSpace(in.GitHub)
	return in
}

// Validate expects a normalized input.
func (in ProjectInput) Validate() error {
	var errs fieldErrors
	if in.Title == "" {
		errs.add("title", "title is required")
	} else if runeLen(in.Title) > MaxProjectTitleLength {
		errs.add("title", fmt.Sprintf("title must be at most %d characters", MaxProjectTitleLength))
	}
	errs.required("description", in.Description)
	if len(in.Images) == 0 {
		errs.add("images", "at least one image is required")
	}
	if len(in.Technologies) == 0 {
		errs.add("technologies", "at least one technology is required")
	}
	return errs.err()
}

// ProjectFilter narrows ListProjects; a nil Featured lists everything.
type ProjectFilter struct {
	Featured *bool
}

type CreateProjectParams struct {
	ID        string
	Input     ProjectInput
	CreatedAt time.Time
}

type UpdateProjectParams struct {
	ID        string
	Input     ProjectInput
	UpdatedAt time.Time
}
