package bot

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
)

type BotService interface {
	// Route maps trimmed text onto a Command. It never fails; unmatched text is KindUnknown.
	Route(text string, roster []employee.Employee, today time.Time) Command

	// HandleMessage routes text, renders the reply and sends it to chatID.
	// Errors are logged and turned into a fallback reply, never returned.
	HandleMessage(ctx context.Context, chatID int64, text string) Reply
}
