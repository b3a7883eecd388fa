package domain

import "time"

// ContactMessage a contact form submission forwarded to the shop operators
type ContactMessage struct {
	Name       string    `json:"name" form:"name" validate:"required"`
	Email      string    `json:"email" form:"email" validate:"required,shopemail"`
	Message    string    `json:"message" form:"message" validate:"required"`
	Host       string    `json:"host"`
	ReceivedAt time.Time `json:"received_at"`
}
