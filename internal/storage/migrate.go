package storage

import (
	"time"

	"github.com/manav03panchal/workreport/internal/model"
)

// storedColleague is the on-disk shape of a colleague, tolerant of numeric ids.
type storedColleague struct {
	model.Colleague
	ID flexibleID `json:"id"`
}

func (s storedColleague) record(newID func() string) (model.Colleague, bool) {
	c := s.Colleague
	c.ID = s.ID.value
	changed := s.ID.fromNumber
	if c.ID == "" {
		c.ID = newID()
		changed = true
	}
	return c, changed
}

// storedReport is the on-disk shape of a report. Pointer fields detect keys
// that older data files lack.
type storedReport struct {
	model.WorkReport
	ID           flexibleID         `json:"id"`
	BreakMinutes *float64           `json:"breakMinutes"`
	Hours        *float64           `json:"hours"`
	Worksite     *string            `json:"worksite"`
	Colleagues   *[]storedColleague `json:"colleagues"`
}

// migrateReports decodes a workReports document and brings every record to
// the current schema. changed reports whether any record needed a fix;
// skipped counts records that could not be decoded at all.
func migrateReports(data []byte, newID func() string, now func() time.Time) (reports []model.WorkReport, changed bool, skipped int, err error) {
	stored, skipped, err := decodeRecords[storedReport](model.KeyWorkReports, data)
	if err != nil {
		return nil, false, 0, err
	}

	reports = make([]model.WorkReport, 0, len(stored))
	for _, s := range stored {
		r := s.WorkReport

		r.ID = s.ID.value
		if s.ID.fromNumber {
			changed = true
		}
		if r.ID == "" {
			r.ID = newID()
			changed = true
		}

		if s.BreakMinutes == nil || *s.BreakMinutes < 0 {
			r.BreakMinutes = 0
			changed = true
		} else {
			r.BreakMinutes = *s.BreakMinutes
		}

		if s.Worksite == nil {
			r.Worksite = ""
			changed = true
		} else {
			r.Worksite = *s.Worksite
		}

		r.Colleagues = []model.Colleague{}
		if s.Colleagues == nil || *s.Colleagues == nil {
			changed = true
		} else {
			for _, sc := range *s.Colleagues {
				c, fixed := sc.record(newID)
				changed = changed || fixed
				r.Colleagues = append(r.Colleagues, c)
			}
		}

		if s.Hours == nil || *s.Hours < 0 {
			r.Recompute()
			changed = true
		} else {
			r.Hours = *s.Hours
		}

		if r.CreatedAt.IsZero() {
			r.CreatedAt = now()
			changed = true
		}

		reports = append(reports, r)
	}

	return reports, changed, skipped, nil
}

// storedWorksite is the on-disk shape of a worksite.
type storedWorksite struct {
	model.Worksite
	ID flexibleID `json:"id"`
}

// storedProject is the on-disk shape of a project. Older files lack
// defaultHours.
type storedProject struct {
	model.Project
	ID           flexibleID `json:"id"`
	DefaultHours *float64   `json:"defaultHours"`
}

func decodeColleagues(data []byte, newID func() string) ([]model.Colleague, bool, int, error) {
	stored, skipped, err := decodeRecords[storedColleague](model.KeyColleagues, data)
	if err != nil {
		return nil, false, 0, err
	}
	out := make([]model.Colleague, 0, len(stored))
	changed := false
	for _, s := range stored {
		c, fixed := s.record(newID)
		changed = changed || fixed
		out = append(out, c)
	}
	return out, changed, skipped, nil
}

func decodeWorksites(data []byte, newID func() string) ([]model.Worksite, bool, int, error) {
	stored, skipped, err := decodeRecords[storedWorksite](model.KeyWorksites, data)
	if err != nil {
		return nil, false, 0, err
	}
	out := make([]model.Worksite, 0, len(stored))
	changed := false
	for _, s := range stored {
		w := s.Worksite
		w.ID = s.ID.value
		changed = changed || s.ID.fromNumber
		if w.ID == "" {
			w.ID = newID()
			changed = true
		}
		out = append(out, w)
	}
	return out, changed, skipped, nil
}

func decodeProjects(data []byte, newID func() string) ([]model.Project, bool, int, error) {
	stored, skipped, err := decodeRecords[storedProject](model.KeyProjects, data)
	if err != nil {
		return nil, false, 0, err
	}
	out := make([]model.Project, 0, len(stored))
	changed := false
	for _, s := range stored {
		p := s.Project
		p.ID = s.ID.value
		changed = changed || s.ID.fromNumber
		if p.ID == "" {
			p.ID = newID()
			changed = true
		}
		if s.DefaultHours == nil {
			p.DefaultHours = model.DefaultProjectHours
			changed = true
		} else {
			p.DefaultHours = *s.DefaultHours
		}
		out = append(out, p)
	}
	return out, changed, skipped, nil
}
