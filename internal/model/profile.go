package model

import (
	"strings"
	"time"
)

// ProfileSingletonID is the primary key of the one profile row.
const ProfileSingletonID = 1

const DefaultProfileImage = "/images/default-profile.jpg"

type Profile struct {
	ID           int        `db:"id" json:"-"`
	FullName     string     `db:"full_name" json:"fullName"`
	About        string     `db:"about" json:"about"`
	Email        string     `db:"email" json:"email"`
	GitHub       string     `db:"github" json:"github"`
	LinkedIn     string     `db:"linkedin" json:"linkedin"`
	ProfileImage string     `db:"profile_image" json:"profileImage"`
	CreatedAt    *time.Time `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// DefaultProfile is what readers get before the profile was ever saved.
func DefaultProfile() *Profile {
	return &Profile{
		ID:           ProfileSingletonID,
		ProfileImage: DefaultProfileImage,
	}
}

type ProfileInput struct {
	FullName     string `json:"fullName"`
	About        string `json:"about"`
	Email        string `json:"email"`
	GitHub       string `json:"github"`
	LinkedIn     string `json:"linkedin"`
	ProfileImage string `json:"profileImage"`
}

func (in ProfileInput) Normalize() ProfileInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.About = strings.TrimSpace(in.About)
	in.Email = strings.TrimSpace(in.Email)
	in.GitHub = strings.TrimSpace(in.GitHub)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	in.ProfileImage = strings.TrimSpace(in.ProfileImage)
	if in.ProfileImage == "" {
		in.ProfileImage = DefaultProfileImage
	}
	return in
}

// Validate expects a normalized input.
func (in ProfileInput) Validate() error {
	var errs fieldErrors
	errs.required("fullName", in.FullName)
	errs.required("about", in.About)
	if in.Email == "" {
		errs.add("email", "email is required")
	} else if !IsValidEmail(in.Email) {
		errs.add("email", "email must be a valid address")
	}
	return errs.err()
}
