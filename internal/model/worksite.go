package model

import "time"

// Worksite is a place where work is performed.
type Worksite struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"max=128"`
	Address     string    `json:"address" validate:"max=256"`
	Description string    `json:"description" validate:"max=4096"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetID returns the worksite ID.
func (w *Worksite) GetID() string { return w.ID }

// Matches reports whether query occurs in any free-text field.
func (w *Worksite) Matches(query string) bool {
	return containsFold(query, w.Name, w.Address, w.Description)
}

// WorksiteFields are the editable fields of a worksite.
type WorksiteFields struct {
	Name        string `validate:"max=128"`
	Address     string `validate:"max=256"`
	Description string `validate:"max=4096"`
}

// Apply copies the fields onto w, keeping its identity.
func (f WorksiteFields) Apply(w *Worksite) {
	w.Name = f.Name
	w.Address = f.Address
	w.Description = f.Description
}
