package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

type ReminderHandler interface {
	TriggerDailyReminder(w http.ResponseWriter, r *http.Request)
	TriggerPendingReminder(w http.ResponseWriter, r *http.Request)
	TriggerWeeklyPendingReport(w http.ResponseWriter, r *http.Request)
}

type reminderHandlerImpl struct {
	triggerService reminder.TriggerService
}

func NewReminderHandler(triggerService reminder.TriggerService) ReminderHandler {
	return &reminderHandlerImpl{triggerService: triggerService}
}

// TriggerDailyReminder handles POST /reminders/daily
func (h *reminderHandlerImpl) TriggerDailyReminder(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, r, reminder.TriggerDailyReminder)
}

// TriggerPendingReminder handles POST /reminders/pending
func (h *reminderHandlerImpl) TriggerPendingReminder(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, r, reminder.TriggerPendingReminder)
}

// TriggerWeeklyPendingReport handles POST /reports/weekly-pending
func (h *reminderHandlerImpl) TriggerWeeklyPendingReport(w http.ResponseWriter, r *http.Request) {
	h.enqueue(w, r, reminder.TriggerWeeklyPending)
}

func (h *reminderHandlerImpl) enqueue(w http.ResponseWriter, r *http.Request, trigger reminder.Trigger) {
	var req reminder.TriggerRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	accepted, err := h.triggerService.Trigger(trigger, req.ParsedDate(), true)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Trigger queued", accepted)
}
