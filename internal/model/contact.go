package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// Rows are created once and never updated by this service.
type ContactMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IPHash    string    `json:"-"` // "" when hashing is disabled
	CreatedAt time.Time `json:"createdAt"`
}
