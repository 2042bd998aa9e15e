package domain

// Category groups associations, e.g. "City Council Members".
type Category struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
