// Package export writes work reports to JSON, CSV and XLSX files and
// handles full backups of the persisted collections.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/manav03panchal/workreport/internal/errors"
	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/validate"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a flag value or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	}
	return "", errors.NewUserErrorWithField("format", s, "Unknown export format", "Use one of: json, csv, xlsx")
}

// Binary reports whether the format must not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatXLSX
}

// Options control how reports are rendered.
type Options struct {
	// Now stamps the JSON document.
	Now time.Time
	// Theme colors the XLSX header row. Zero means the default theme.
	Theme model.Theme
}

const documentVersion = "1"

// ReportDocument is the JSON export of a report listing.
type ReportDocument struct {
	Version    string               `json:"version"`
	ExportedAt string               `json:"exported_at"`
	Count      int                  `json:"count"`
	TotalHours float64              `json:"total_hours"`
	Reports    []*model.WorkReport `json:"reports"`
}

// Write renders reports in the given format.
func Write(w io.Writer, format Format, reports []*model.WorkReport, opts Options) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, reports)
	case FormatXLSX:
		return WriteXLSX(w, reports, opts.Theme)
	default:
		return WriteJSON(w, reports, opts.Now)
	}
}

// ToFile renders reports and replaces path atomically.
func ToFile(path string, format Format, reports []*model.WorkReport, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, reports, opts); err != nil {
		return err
	}
	return storage.SafeWrite(path, buf.Bytes(), 0o644)
}

// WriteJSON writes reports as an indented ReportDocument.
func WriteJSON(w io.Writer, reports []*model.WorkReport, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	doc := ReportDocument{
		Version:    documentVersion,
		ExportedAt: now.Format(time.RFC3339),
		Count:      len(reports),
		TotalHours: totalHours(reports),
		Reports:    reports,
	}
	if doc.Reports == nil {
		doc.Reports = []*model.WorkReport{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

var columns = []string{
	"date", "start", "end", "break_minutes", "hours",
	"project", "worksite", "colleagues", "description", "id", "created_at",
}

func row(r *model.WorkReport) []string {
	return []string{
		r.Date.String(),
		r.StartTime.String(),
		r.EndTime.String(),
		strconv.FormatFloat(r.BreakMinutes, 'f', -1, 64),
		worktime.FormatDecimal(r.Hours, 2),
		r.Project,
		r.Worksite,
		strings.Join(r.ColleagueNames(), "; "),
		r.Description,
		r.ID,
		r.CreatedAt.Format(time.RFC3339),
	}
}

// WriteCSV writes one row per report after a header row.
func WriteCSV(w io.Writer, reports []*model.WorkReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return err
	}
	for _, r := range reports {
		if err := writer.Write(row(r)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

const sheetName = "Reports"

// columnWidths are the XLSX widths of columns, in order.
var columnWidths = []float64{12, 8, 8, 14, 8, 20, 20, 28, 48, 38, 22}

// WriteXLSX writes reports to a single-sheet workbook with a totals row.
func WriteXLSX(w io.Writer, reports []*model.WorkReport, theme model.Theme) error {
	if theme.ID == "" {
		theme = model.DefaultThemes()[0]
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if f.GetSheetName(0) != sheetName {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("error removing default sheet: %w", err)
		}
	}

	for i, header := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: theme.Colors.Surface},
		Fill: excelize.Fill{Type: "pattern", Color: []string{theme.Colors.Primary}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for i, r := range reports {
		values := []any{
			r.Date.String(),
			r.StartTime.String(),
			r.EndTime.String(),
			r.BreakMinutes,
			r.Hours,
			r.Project,
			r.Worksite,
			strings.Join(r.ColleagueNames(), "; "),
			r.Description,
			r.ID,
			r.CreatedAt.Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	// Totals under the hours column.
	totalRow := len(reports) + 2
	labelCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	sumCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	if err := f.SetCellValue(sheetName, labelCell, "total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, sumCell, totalHours(reports)); err != nil {
		return err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("error sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func totalHours(reports []*model.WorkReport) float64 {
	var total float64
	for _, r := range reports {
		total += r.Hours
	}
	return total
}

// DefaultFilename returns a file name for an export made at now. A scope
// other than "" or "all", such as a range flag, is made filesystem safe and
// added to the name.
func DefaultFilename(format Format, now time.Time, scope string) string {
	name := "workreport"
	scope = strings.Join(strings.Fields(strings.ToLower(scope)), "-")
	if scope = validate.SafeFilename(scope); scope != "" && scope != "all" {
		name += "-" + scope
	}
	return fmt.Sprintf("%s-%s.%s", name, now.Format("2006-01-02"), format)
}
