package model

import "time"

// Colleague is a person who can be attached to a report.
type Colleague struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"max=128"`
	Department string    `json:"department" validate:"max=128"`
	Email      string    `json:"email" validate:"omitempty,email,max=254"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GetID returns the colleague ID.
func (c *Colleague) GetID() string { return c.ID }

// Matches reports whether query occurs in any free-text field.
func (c *Colleague) Matches(query string) bool {
	return containsFold(query, c.Name, c.Department, c.Email)
}

// ColleagueFields are the editable fields of a colleague.
type ColleagueFields struct {
	Name       string `validate:"max=128"`
	Department string `validate:"max=128"`
	Email      string `validate:"omitempty,email,max=254"`
}

// Apply copies the fields onto c, keeping its identity.
func (f ColleagueFields) Apply(c *Colleague) {
	c.Name = f.Name
	c.Department = f.Department
	c.Email = f.Email
}
