package model

import (
	"time"
)

const DefaultProfileImageURL = "https://geographyandyou.com/images/user-profile.png"

type User struct {
	ID                    string    `db:"id"`
	Name                  string    `db:"name"`
	Email                 string    `db:"email"`
	PasswordHash          string    `db:"password_hash"`
	Bio                   string    `db:"bio"`
	ProfileImageURL       string    `db:"profile_image_url"`
	ProfileImageStorageID string    `db:"profile_image_storage_id"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

func (u *User) ProfileImage() Image {
	return Image{URL: u.ProfileImageURL, StorageID: u.ProfileImageStorageID}
}

// HasHostedImage reports whether the profile image was uploaded by the user
// rather than being the placeholder.
func (u *User) HasHostedImage() bool {
	return u.ProfileImageStorageID != ""
}

// UserSummary is the lightweight author projection joined onto pins,
// comments and follower lists.
type UserSummary struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	ProfileImageURL string `db:"profile_image_url"`
	ProfileImageID  string `db:"profile_image_storage_id"`
}

func (s UserSummary) ProfileImage() Image {
	return Image{URL: s.ProfileImageURL, StorageID: s.ProfileImageID}
}

// Graph holds the id sets hanging off a user.
type Graph struct {
	Followers []string
	Following []string
	SavedPins []string
}
