package output

import (
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/storage"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ReportResponse is the output of a single-report command.
type ReportResponse struct {
	Status string            `json:"status"`
	Report *model.WorkReport `json:"report"`
}

// ReportsResponse is the output of a report listing.
type ReportsResponse struct {
	Reports    []*model.WorkReport `json:"reports"`
	TotalCount int                 `json:"total_count"`
	TotalHours float64             `json:"total_hours"`
}

// NewReportsResponse summarizes a report listing.
func NewReportsResponse(reports []*model.WorkReport) *ReportsResponse {
	resp := &ReportsResponse{Reports: reports, TotalCount: len(reports)}
	if resp.Reports == nil {
		resp.Reports = []*model.WorkReport{}
	}
	for _, r := range reports {
		resp.TotalHours += r.Hours
	}
	return resp
}

// RecordResponse is the output of a registry mutation.
type RecordResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
	Record any    `json:"record,omitempty"`
	ID     string `json:"id,omitempty"`
}

// ListResponse is the output of a registry listing.
type ListResponse[T any] struct {
	Kind    string `json:"kind"`
	Records []*T   `json:"records"`
	Count   int    `json:"count"`
}

// NewListResponse wraps a registry listing.
func NewListResponse[T any](kind string, records []*T) *ListResponse[T] {
	if records == nil {
		records = []*T{}
	}
	return &ListResponse[T]{Kind: kind, Records: records, Count: len(records)}
}

// ThemeOutput is a theme with its origin.
type ThemeOutput struct {
	model.Theme
	Custom bool `json:"custom"`
	Active bool `json:"active"`
}

// ThemesResponse is the output of the theme listing.
type ThemesResponse struct {
	ActiveTheme string        `json:"active_theme"`
	Themes      []ThemeOutput `json:"themes"`
}

// NewThemesResponse marks the active and custom themes.
func NewThemesResponse(themes []model.Theme, activeID string, isCustom func(string) bool) *ThemesResponse {
	resp := &ThemesResponse{ActiveTheme: activeID, Themes: make([]ThemeOutput, len(themes))}
	for i, t := range themes {
		resp.Themes[i] = ThemeOutput{Theme: t, Custom: isCustom != nil && isCustom(t.ID), Active: t.ID == activeID}
	}
	return resp
}

// StatusResponse is a bare acknowledgement.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintReport outputs a single report.
func (j *JSONFormatter) PrintReport(status string, r *model.WorkReport) error {
	return j.JSON(ReportResponse{Status: status, Report: r})
}

// PrintReports outputs a report listing.
func (j *JSONFormatter) PrintReports(reports []*model.WorkReport) error {
	return j.JSON(NewReportsResponse(reports))
}

// PrintRecord outputs the result of a registry mutation.
func (j *JSONFormatter) PrintRecord(status, kind string, record any) error {
	return j.JSON(RecordResponse{Status: status, Kind: kind, Record: record})
}

// PrintDeleted acknowledges a deletion.
func (j *JSONFormatter) PrintDeleted(kind, id string) error {
	return j.JSON(RecordResponse{Status: "deleted", Kind: kind, ID: id})
}

// PrintStatus outputs a bare acknowledgement.
func (j *JSONFormatter) PrintStatus(status, message string) error {
	return j.JSON(StatusResponse{Status: status, Message: message})
}

// PrintIntegrity outputs a database health check.
func (j *JSONFormatter) PrintIntegrity(status *storage.RecoveryStatus) error {
	return j.JSON(status)
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(errMsg, field, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Field:      field,
		Suggestion: suggestion,
	})
}
