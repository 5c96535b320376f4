package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/bot"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
)

// maxUpdateSize bounds a webhook body. Text updates are far smaller.
const maxUpdateSize = 1 << 20

type TelegramHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type telegramHandlerImpl struct {
	botService bot.BotService
}

func NewTelegramHandler(botService bot.BotService) TelegramHandler {
	return &telegramHandlerImpl{botService: botService}
}

// Webhook handles POST /telegram/webhook. It always answers 200 so the Bot API
// does not redeliver; unusable updates are ignored.
func (h *telegramHandlerImpl) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateSize))
	if err != nil {
		slog.Warn("Telegram: unreadable webhook body", "error", err)
		response.Success(w, nil)
		return
	}

	msg, ok := telegram.ParseUpdate(body)
	if !ok {
		slog.Debug("Telegram: update ignored")
		response.Success(w, nil)
		return
	}

	reply := h.botService.HandleMessage(r.Context(), msg.ChatID, msg.Text)
	if reply.Err != nil {
		slog.Warn("Telegram: update handled with error", "chat_id", msg.ChatID, "kind", reply.Kind, "error", reply.Err)
	}
	response.Success(w, nil)
}
