package model

import "time"

// Feedback is a submitted feedback document, optionally tied to an order.
type Feedback struct {
	ID           string    `json:"-"`
	FeedbackID   int       `json:"feedback_id"`
	UserID       int       `json:"user_id"`
	OrderID      *int      `json:"order_id,omitempty"`
	Category     string    `json:"category"`
	Subject      string    `json:"subject"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	Channel      string    `json:"channel"`
	AllowContact bool      `json:"allow_contact"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
