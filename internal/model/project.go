package model

import "time"

// DefaultProjectHours is the default planned day length of a new project.
const DefaultProjectHours = 8

// Project is a recurring project or customer.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"max=128"`
	Description  string    `json:"description" validate:"max=4096"`
	DefaultHours float64   `json:"defaultHours" validate:"gte=0,lte=24"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetID returns the project ID.
func (p *Project) GetID() string { return p.ID }

// Matches reports whether query occurs in any free-text field.
func (p *Project) Matches(query string) bool {
	return containsFold(query, p.Name, p.Description)
}

// ProjectFields are the editable fields of a project.
type ProjectFields struct {
	Name         string  `validate:"max=128"`
	Description  string  `validate:"max=4096"`
	DefaultHours float64 `validate:"gte=0,lte=24"`
}

// Apply copies the fields onto p, keeping its identity.
func (f ProjectFields) Apply(p *Project) {
	p.Name = f.Name
	p.Description = f.Description
	p.DefaultHours = f.DefaultHours
}
