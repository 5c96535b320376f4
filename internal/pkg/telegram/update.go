package telegram

import (
	"encoding/json"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// IncomingMessage is the part of a webhook update the bot reacts to.
type IncomingMessage struct {
	ChatID int64
	Text   string
}

// ParseUpdate decodes a webhook body. ok is false for bodies that are not JSON,
// carry no message, or lack text or a chat id.
func ParseUpdate(body []byte) (IncomingMessage, bool) {
	if len(body) == 0 {
		return IncomingMessage{}, false
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return IncomingMessage{}, false
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Chat.ID == 0 {
		return IncomingMessage{}, false
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return IncomingMessage{}, false
	}
	return IncomingMessage{ChatID: msg.Chat.ID, Text: text}, true
}
