package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash
	Latitude     *float64  `json:"latitude" db:"latitude"`     // Last known latitude, if shared
	Longitude    *float64  `json:"longitude" db:"longitude"`   // Last known longitude, if shared
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Registration timestamp
}

// UserProfile is the public view of a user returned by login and /user.
// swagger:model UserProfile
type UserProfile struct {
	// example: 1
	ID int64 `json:"id"`

	// example: john_doe
	Username string `json:"username"`

	// example: john@example.com
	Email string `json:"email"`

	// example: 48.8566
	Latitude *float64 `json:"latitude"`

	// example: 2.3522
	Longitude *float64 `json:"longitude"`
}

// Profile converts the database row into its public view.
func (u *UserDB) Profile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
	}
}
