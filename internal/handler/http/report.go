package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	reportsvc "github.com/cmlabs-hris/timesheet-backend-go/internal/service/report"
)

type ReportHandler interface {
	// Employee monthly timesheet report
	GetEmployeeTimesheetReport(w http.ResponseWriter, r *http.Request)

	// Trailing-week missing timesheet spreadsheet
	GenerateMissingTimesheets(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	sender        telegram.Sender
	chatID        int64
	clock         calendar.Clock
}

func NewReportHandler(reportService report.ReportService, sender telegram.Sender, chatID int64, clock calendar.Clock) ReportHandler {
	if clock == nil {
		clock = calendar.SystemClock(time.UTC)
	}
	return &reportHandlerImpl{
		reportService: reportService,
		sender:        sender,
		chatID:        chatID,
		clock:         clock,
	}
}

// GetEmployeeTimesheetReport handles GET /reports/employee-timesheet
func (h *reportHandlerImpl) GetEmployeeTimesheetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var errs validator.ValidationErrors
	month, ok := parseIntParam(query.Get("month"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	}
	year, ok := parseIntParam(query.Get("year"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	req := report.EmployeeTimesheetReportRequest{
		EmployeeID: strings.TrimSpace(query.Get("employee")),
		Month:      month,
		Year:       year,
	}

	result, err := h.reportService.EmployeeTimesheet(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateMissingTimesheets handles POST /reports/missing-timesheets
func (h *reportHandlerImpl) GenerateMissingTimesheets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req report.GenerateArtifactRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date := h.clock.Today()
	if req.Date != "" {
		date, _ = calendar.ParseDate(req.Date)
	}

	artifact, err := h.reportService.MissingTimesheetArtifact(ctx, date)
	if errors.Is(err, report.ErrNothingToGenerate) {
		response.SuccessWithMessage(w, "No missing or draft timesheets in the last 7 days", nil)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Send {
		caption := reportsvc.MissingTimesheetCaption(date)
		if err := h.sender.SendDocument(ctx, h.chatID, artifact.FileName, artifact.Data, caption); err != nil {
			response.HandleError(w, err)
			return
		}
		slog.Info("HTTP: missing timesheet spreadsheet sent", "file", artifact.FileName)
	}

	response.SuccessWithMessage(w, "Missing timesheet spreadsheet generated", artifact)
}

// parseIntParam accepts an empty value as zero so that Validate can report it
// as missing.
func parseIntParam(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}
	n, err := strconv.Atoi(value)
	return n, err == nil
}

// decodeOptionalJSON decodes a JSON body into dst. An empty body is allowed.
func decodeOptionalJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
