package entity

import "time"

// Client is a customer of the workshop.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name for display.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// HasCompleteName reports whether both name parts are filled in. Estimates
// cannot be generated for a client without a full name.
func (c Client) HasCompleteName() bool {
	return trimmedNonEmpty(c.FirstName) && trimmedNonEmpty(c.LastName)
}
