package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	headerFill  = "404040"
	headerColor = "FFFFFF"
	widthPad    = 3
)

var missingColumns = []string{"Employee ID", "Employee Name", "Missing Dates", "Draft Dates"}

// MissingTimesheetFileName names the trailing-window spreadsheet after the day the
// window opens and the day it was generated.
func MissingTimesheetFileName(windowStart, today time.Time) string {
	return fmt.Sprintf("Missing_Timesheet_%s_to_%s.xlsx", calendar.Format(windowStart), calendar.Format(today))
}

// MissingTimesheetCaption is the document caption when the spreadsheet is sent to chat.
func MissingTimesheetCaption(today time.Time) string {
	from, to := MissingWindow(today)
	return fmt.Sprintf("Missing Timesheets (%s → %s)", calendar.Format(from), calendar.Format(to))
}

func joinDates(days []time.Time) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, calendar.Format(d))
	}
	return strings.Join(parts, ", ")
}

// RenderMissingSpreadsheet writes the missing/draft summary as a formatted
// workbook. An empty summary set is ErrNothingToGenerate and produces no bytes.
func RenderMissingSpreadsheet(r report.MissingTimesheetReport) ([]byte, error) {
	if len(r.Rows) == 0 {
		return nil, report.ErrNothingToGenerate
	}

	cells := make([][]string, 0, len(r.Rows)+1)
	cells = append(cells, missingColumns)
	for _, row := range r.Rows {
		cells = append(cells, []string{row.EmployeeID, row.EmployeeName, joinDates(row.MissingDates), joinDates(row.DraftDates)})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeSheet(f, sheet, cells); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportRenderFailed, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrReportRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, cells [][]string) error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return err
	}

	widths := make([]int, len(cells[0]))
	for r, row := range cells {
		for c, value := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if value != "" {
				if err := f.SetCellValue(sheet, ref, value); err != nil {
					return err
				}
			}
			if n := utf8.RuneCountInString(value); n > widths[c] {
				widths[c] = n
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(widths))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if len(cells) > 1 {
		if err := f.SetCellStyle(sheet, "A2", fmt.Sprintf("%s%d", lastCol, len(cells)), dataStyle); err != nil {
			return err
		}
	}

	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w+widthPad)); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
