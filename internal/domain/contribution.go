package domain

import "time"

// Contribution links a contributor to a recipient. Amount is stored in cents.
type Contribution struct {
	ID              string    `json:"id"`
	Amount          int64     `json:"amount"`
	Date            time.Time `json:"date"`
	ContributorName string    `json:"contributor_name"`
	ContributorID   string    `json:"contributor_id"`
	RecipientName   string    `json:"recipient_name"`
	RecipientID     string    `json:"recipient_id"`
}
