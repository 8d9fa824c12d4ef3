package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Bio          *string   `json:"bio"`
	Image        *string   `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate carries the fields of a partial profile update; nil means unchanged.
type UserUpdate struct {
	Email    *string
	Username *string
	Bio      *string
	Image    *string
}

func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.Username == nil && u.Bio == nil && u.Image == nil
}
