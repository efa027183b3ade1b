// internal/models/session.go
package models

import "time"

// Session links a conversation to the user who started it.
type Session struct {
	ID        string    `json:"id" db:"id"`
	User      User      `json:"user"`
	Language  string    `json:"language,omitempty" db:"language"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// User carries the contact details needed for follow-up notifications.
type User struct {
	ID       string `json:"id" db:"user_id"`
	Name     string `json:"name,omitempty" db:"name"`
	MobileNo string `json:"mobileNo" db:"mobile_no"`
	Email    string `json:"email,omitempty" db:"email"`
}
