package model

import (
	"slices"
	"time"

	"github.com/manav03panchal/workreport/internal/worktime"
)

// WorkReport is one logged work session.
type WorkReport struct {
	ID           string         `json:"id"`
	Date         worktime.Date  `json:"date"`
	StartTime    worktime.Clock `json:"startTime"`
	EndTime      worktime.Clock `json:"endTime"`
	BreakMinutes float64        `json:"breakMinutes" validate:"gte=0"`
	Hours        float64        `json:"hours" validate:"gte=0"`
	Project      string         `json:"project" validate:"max=256"`
	Worksite     string         `json:"worksite" validate:"max=256"`
	Description  string         `json:"description" validate:"max=65536"`
	Colleagues   []Colleague    `json:"colleagues"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// GetID returns the report ID.
func (r *WorkReport) GetID() string {
	return r.ID
}

// Recompute derives Hours from the report's times and break.
func (r *WorkReport) Recompute() {
	r.Hours = worktime.ComputeWorkedHours(r.StartTime, r.EndTime, r.BreakMinutes)
}

// Clone returns a deep copy of the report. The colleague snapshots of the
// copy share no memory with the original.
func (r WorkReport) Clone() WorkReport {
	r.Colleagues = CloneColleagues(r.Colleagues)
	return r
}

// ColleagueNames returns the names of the embedded colleague snapshots.
func (r *WorkReport) ColleagueNames() []string {
	names := make([]string, len(r.Colleagues))
	for i, c := range r.Colleagues {
		names[i] = c.Name
	}
	return names
}

// Matches reports whether query occurs in the project, description, worksite
// or any colleague name, ignoring case.
func (r *WorkReport) Matches(query string) bool {
	fields := append([]string{r.Project, r.Description, r.Worksite}, r.ColleagueNames()...)
	return containsFold(query, fields...)
}

// ReportInput holds the caller-supplied fields of a report. ID, CreatedAt and
// Hours are assigned by the store.
type ReportInput struct {
	Date         worktime.Date
	StartTime    worktime.Clock
	EndTime      worktime.Clock
	BreakMinutes float64 `validate:"gte=0"`
	Project      string  `validate:"max=256"`
	Worksite     string  `validate:"max=256"`
	Description  string  `validate:"max=65536"`
	Colleagues   []Colleague
}

// NewWorkReport builds a report from input with the given identity. Hours are
// computed and colleague snapshots are copied.
func NewWorkReport(id string, createdAt time.Time, in ReportInput) WorkReport {
	r := WorkReport{
		ID:           id,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		BreakMinutes: in.BreakMinutes,
		Project:      in.Project,
		Worksite:     in.Worksite,
		Description:  in.Description,
		Colleagues:   CloneColleagues(in.Colleagues),
		CreatedAt:    createdAt,
	}
	r.Recompute()
	return r
}

// Input returns the caller-editable fields of r.
func (r *WorkReport) Input() ReportInput {
	return ReportInput{
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		BreakMinutes: r.BreakMinutes,
		Project:      r.Project,
		Worksite:     r.Worksite,
		Description:  r.Description,
		Colleagues:   CloneColleagues(r.Colleagues),
	}
}

// CloneColleagues copies a colleague slice. A nil slice becomes empty so that
// reports always persist "colleagues": [].
func CloneColleagues(cs []Colleague) []Colleague {
	if cs == nil {
		return []Colleague{}
	}
	return slices.Clone(cs)
}
