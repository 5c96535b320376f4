package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/artifact"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/queue"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type errorMapping struct {
	targets []error
	status  int
	code    string
	message string
}

// First match wins.
var errorMappings = []errorMapping{
	{[]error{employee.ErrEmployeeNotFound}, http.StatusNotFound, "NOT_FOUND", "Employee not found"},
	{[]error{reminder.ErrUnknownTrigger}, http.StatusBadRequest, "BAD_REQUEST", "Unknown trigger"},
	{[]error{queue.ErrDuplicate}, http.StatusConflict, "CONFLICT", "Trigger already queued for this date"},
	{[]error{queue.ErrQueueFull, queue.ErrStopped}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Trigger queue is not accepting work, try again later"},
	{[]error{report.ErrNothingToGenerate}, http.StatusBadRequest, "BAD_REQUEST", "Nothing to generate"},
	{[]error{telegram.ErrTransport}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Failed to deliver the report to the chat"},
	{[]error{artifact.ErrArtifact, report.ErrReportRenderFailed}, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Failed to produce the report file"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		Fail(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		for _, target := range m.targets {
			if !errors.Is(err, target) {
				continue
			}
			if m.status >= http.StatusInternalServerError {
				slog.Error("HTTP: request failed", "status", m.status, "error", err)
			}
			Fail(w, m.status, m.code, m.message, nil)
			return
		}
	}

	slog.Error("HTTP: unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil)
}
