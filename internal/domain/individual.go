package domain

import "time"

// IndividualName is the trimmed record returned by search and list queries.
type IndividualName struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName joins first and last name the way every page renders them.
func (n IndividualName) DisplayName() string {
	return n.FirstName + " " + n.LastName
}

// Individual is a candidate, official or contributor with profile metadata.
type Individual struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ZIP       string    `json:"zip"`
	UpdatedTS time.Time `json:"updated_ts"`
	Role      string    `json:"role"`
	Title     string    `json:"title"`
	Twitter   string    `json:"twitter"`

	Associations []Association `json:"associations,omitempty"`
}

// DisplayName joins first and last name.
func (i Individual) DisplayName() string {
	return i.FirstName + " " + i.LastName
}

// Name returns the search-result projection of the individual.
func (i Individual) Name() IndividualName {
	return IndividualName{ID: i.ID, FirstName: i.FirstName, LastName: i.LastName}
}

// Association is an affiliation attached to an individual, e.g. a PAC or
// an organisation membership.
type Association struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
