package storage

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/logging"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/validate"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// SortKey selects the order of List results.
type SortKey string

const (
	SortByDate    SortKey = "date"
	SortByHours   SortKey = "hours"
	SortByProject SortKey = "project"
)

// ParseSortKey maps a flag value to a SortKey. Empty means SortByDate.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByDate:
		return SortByDate, true
	case SortByHours:
		return SortByHours, true
	case SortByProject:
		return SortByProject, true
	}
	return "", false
}

// ListOptions filters and orders a report listing. The zero value lists every
// report, newest date first.
type ListOptions struct {
	// Query is matched case-insensitively against project, description,
	// worksite and colleague names.
	Query string
	// From and To bound the report date inclusively. A zero date leaves
	// that side open.
	From worktime.Date
	To   worktime.Date
	// Range narrows the window to a calendar period around Reference,
	// which defaults to the store's today.
	Range     worktime.Range
	Reference worktime.Date
	Sort      SortKey
}

// window resolves the inclusive date bounds of o. Zero bounds are open.
func (o ListOptions) window(today worktime.Date) (from, to worktime.Date) {
	from, to = o.From, o.To
	ref := o.Reference
	if ref.IsZero() {
		ref = today
	}
	start, end, bounded := o.Range.Bounds(ref)
	if !bounded {
		return from, to
	}
	if from.IsZero() || start.After(from) {
		from = start
	}
	if to.IsZero() || end.Before(to) {
		to = end
	}
	return from, to
}

// Stats are the dashboard figures of the report collection.
type Stats struct {
	TotalReports int     `json:"total_reports"`
	TotalHours   float64 `json:"total_hours"`
	WeekHours    float64 `json:"week_hours"`
	TodayCount   int     `json:"today_count"`
}

// ReportStore owns the work report collection stored under the workReports
// key. Every mutation rewrites the whole collection.
type ReportStore struct {
	mu      sync.RWMutex
	kv      KV
	opts    storeOptions
	reports []model.WorkReport
	// loadErr is set when undecodable stored data could not be copied to
	// its quarantine key.
	loadErr error
}

// NewReportStore loads the report collection from kv, migrating older
// records. A missing or unreadable collection starts empty. Records that fail
// to decode are skipped and the raw document is kept under its QuarantineKey.
func NewReportStore(kv KV, opts ...Option) *ReportStore {
	s := &ReportStore{kv: kv, opts: applyOptions(opts)}
	s.load()
	return s
}

// Reload discards the in-memory collection and reads it again from the
// provider.
func (s *ReportStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
}

func (s *ReportStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
}

func (s *ReportStore) loadLocked() {
	s.reports = []model.WorkReport{}
	s.loadErr = nil

	data, found := readKey(s.kv, model.KeyWorkReports)
	if !found {
		return
	}

	reports, changed, skipped, err := migrateReports(data, s.opts.newID, s.opts.now)
	if err != nil || skipped > 0 {
		if qerr := quarantine(s.kv, model.KeyWorkReports, data); qerr != nil {
			logging.Error("stored reports could not be preserved, refusing writes",
				logging.KeyKey, model.KeyWorkReports, logging.KeyError, qerr)
			s.loadErr = qerr
		}
	}
	if err != nil {
		logging.Warn("stored reports are malformed, starting empty",
			logging.KeyKey, model.KeyWorkReports, logging.KeyError, err)
		return
	}
	s.reports = reports

	if changed && s.loadErr == nil {
		if err := writeJSON(s.kv, model.KeyWorkReports, reports); err != nil {
			logging.Warn("failed to persist migrated reports",
				logging.KeyKey, model.KeyWorkReports, logging.KeyError, err)
			return
		}
		logging.Info("migrated stored reports", logging.KeyCount, len(reports))
	}
}

// commitLocked persists next and swaps it in. On failure the current
// collection is kept. Nothing is written while unreadable stored data
// could not be preserved.
func (s *ReportStore) commitLocked(op string, next []model.WorkReport) error {
	if s.loadErr != nil {
		return errors.NewSystemErrorWithOp(op+" report", "stored reports are unreadable", errors.ErrDatabaseCorrupted)
	}
	if err := writeJSON(s.kv, model.KeyWorkReports, next); err != nil {
		logging.Error("failed to persist reports", logging.KeyOperation, op, logging.KeyError, err)
		return err
	}
	s.reports = next
	return nil
}

func normalizeInput(in model.ReportInput) model.ReportInput {
	in.Project = validate.SanitizeLabel(in.Project)
	in.Worksite = validate.SanitizeLabel(in.Worksite)
	in.Description = validate.SanitizeNote(in.Description)
	in.Colleagues = model.CloneColleagues(in.Colleagues)
	return in
}

func validateInput(in model.ReportInput) error {
	if in.Date.IsZero() {
		return errors.NewUserErrorWithField("date", "", "date is required", "Provide the day the work happened")
	}
	if err := validate.NonEmpty("project", in.Project); err != nil {
		return err
	}
	if err := validate.NonEmpty("description", in.Description); err != nil {
		return err
	}
	return validate.Struct(in)
}

// Create validates in, computes its hours and appends a new report.
func (s *ReportStore) Create(in model.ReportInput) (*model.WorkReport, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report := model.NewWorkReport(s.opts.newID(), s.opts.now(), in)
	next := append(slices.Clone(s.reports), report)
	if err := s.commitLocked("create_report", next); err != nil {
		return nil, err
	}

	logging.LogOperation("create_report", logging.KeyReportID, report.ID)
	out := report.Clone()
	return &out, nil
}

// Update replaces the report with the given id by r. The id and creation
// time are kept and hours are recomputed.
func (s *ReportStore) Update(id string, r model.WorkReport) (*model.WorkReport, error) {
	in := normalizeInput(r.Input())
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, errors.NotFound(errors.ErrReportNotFound, id)
	}

	current := s.reports[idx]
	updated := model.NewWorkReport(current.ID, current.CreatedAt, in)

	next := slices.Clone(s.reports)
	next[idx] = updated
	if err := s.commitLocked("update_report", next); err != nil {
		return nil, err
	}

	logging.LogOperation("update_report", logging.KeyReportID, id)
	out := updated.Clone()
	return &out, nil
}

// Delete removes the report with the given id.
func (s *ReportStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return errors.NotFound(errors.ErrReportNotFound, id)
	}

	next := slices.Delete(slices.Clone(s.reports), idx, idx+1)
	if err := s.commitLocked("delete_report", next); err != nil {
		return err
	}

	logging.LogOperation("delete_report", logging.KeyReportID, id)
	return nil
}

// Get returns a copy of the report with the given id.
func (s *ReportStore) Get(id string) (*model.WorkReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, errors.NotFound(errors.ErrReportNotFound, id)
	}
	out := s.reports[idx].Clone()
	return &out, nil
}

func (s *ReportStore) indexLocked(id string) int {
	return slices.IndexFunc(s.reports, func(r model.WorkReport) bool {
		return r.ID == id
	})
}

// List returns copies of the reports selected by opts. Ties in the sort key
// keep insertion order.
func (s *ReportStore) List(opts ListOptions) []*model.WorkReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from, to := opts.window(worktime.Today(s.opts.now()))
	out := make([]*model.WorkReport, 0, len(s.reports))
	for i := range s.reports {
		r := &s.reports[i]
		if !r.Matches(opts.Query) {
			continue
		}
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		c := r.Clone()
		out = append(out, &c)
	}

	switch opts.Sort {
	case SortByHours:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Hours > out[j].Hours
		})
	case SortByProject:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Project) < strings.ToLower(out[j].Project)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.After(out[j].Date)
		})
	}

	return out
}

// WeeklyTotal sums the hours of reports dated in the Monday-to-Sunday week
// containing ref.
func (s *ReportStore) WeeklyTotal(ref worktime.Date) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, r := range s.reports {
		if worktime.SameWeek(r.Date, ref) {
			total += r.Hours
		}
	}
	return total
}

// TodayCount counts reports dated ref.
func (s *ReportStore) TodayCount(ref worktime.Date) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.reports {
		if r.Date.Equal(ref) {
			n++
		}
	}
	return n
}

// Stats returns the dashboard figures relative to ref.
func (s *ReportStore) Stats(ref worktime.Date) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{TotalReports: len(s.reports)}
	for _, r := range s.reports {
		st.TotalHours += r.Hours
		if worktime.SameWeek(r.Date, ref) {
			st.WeekHours += r.Hours
		}
		if r.Date.Equal(ref) {
			st.TodayCount++
		}
	}
	return st
}

// Recent returns the n most recently created reports, newest first.
func (s *ReportStore) Recent(n int) []*model.WorkReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []*model.WorkReport{}
	}
	start := max(0, len(s.reports)-n)
	out := make([]*model.WorkReport, 0, len(s.reports)-start)
	for i := len(s.reports) - 1; i >= start; i-- {
		c := s.reports[i].Clone()
		out = append(out, &c)
	}
	return out
}

// Count returns the number of stored reports.
func (s *ReportStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Resolve returns the id of the report whose id equals idOrPrefix or, failing
// that, is the only one starting with it.
func (s *ReportStore) Resolve(idOrPrefix string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", errors.NotFound(errors.ErrReportNotFound, idOrPrefix)
	}
	if s.indexLocked(idOrPrefix) >= 0 {
		return idOrPrefix, nil
	}

	var match string
	for _, r := range s.reports {
		if !strings.HasPrefix(r.ID, idOrPrefix) {
			continue
		}
		if match != "" {
			return "", errors.NewUserErrorWithField("id", idOrPrefix,
				"ambiguous report id", "Use more characters of the id")
		}
		match = r.ID
	}
	if match == "" {
		return "", errors.NotFound(errors.ErrReportNotFound, idOrPrefix)
	}
	return match, nil
}
