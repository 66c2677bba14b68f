package model

import "time"

// PhotoMetadata records an attachment on a support ticket. Only metadata is
// kept; the url may carry a data URL until real uploads exist.
type PhotoMetadata struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified int64  `json:"lastModified"`
	URL          string `json:"url,omitempty"`
}

// SupportTicket is an issue report against an order.
type SupportTicket struct {
	ID                string          `json:"id"`
	TicketID          string          `json:"ticket_id"`
	OrderID           string          `json:"order_id"`
	UserID            int             `json:"user_id"`
	IssueType         string          `json:"issue_type"`
	SelectedItemNames []string        `json:"selected_items"`
	ItemsCount        int             `json:"items_count"`
	Comment           string          `json:"comment"`
	Photos            []PhotoMetadata `json:"photos"`
	PhotoCount        int             `json:"photo_count"`
	Status            string          `json:"status"`
	Resolution        string          `json:"resolution"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ResolvedAt        time.Time       `json:"resolved_at"`
}
