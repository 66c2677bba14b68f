package model

import "time"

// User is a customer profile document.
type User struct {
	ID                    string    `json:"-"`
	UserID                int       `json:"user_id"`
	FullName              string    `json:"full_name"`
	PhoneNumber           string    `json:"phone_number"`
	Email                 string    `json:"email"`
	Address               string    `json:"address"`
	City                  string    `json:"city"`
	Pincode               string    `json:"pincode"`
	PreferredLanguage     string    `json:"preferred_language"`
	MembershipStatus      string    `json:"membership_status"`
	PaymentModePreference string    `json:"payment_mode_preference"`
	LastActiveAt          time.Time `json:"last_active_at"`
}
