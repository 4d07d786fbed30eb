package models

import "time"

// Credential is the auth identity backing a User profile. Its ID is the
// profile's ID; creating an account writes the credential first and removes it
// again if the profile insert fails.
type Credential struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
