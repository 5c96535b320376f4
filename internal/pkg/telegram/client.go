package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrTransport wraps every failed Bot API call.
var ErrTransport = errors.New("telegram transport error")

// Sender delivers chat output. Calls are single best-effort attempts.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error
}

type Config struct {
	Token string
	// Endpoint is a Bot API URL pattern such as tgbotapi.APIEndpoint.
	Endpoint string
	Timeout  time.Duration
}

type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient authenticates against the Bot API with getMe.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = tgbotapi.APIEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, cfg.Endpoint, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: authenticate bot: %v", ErrTransport, err)
	}
	return &Client{bot: bot}, nil
}

// Username is the bot account the token belongs to.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: sendMessage: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = caption
	if _, err := c.bot.Send(doc); err != nil {
		return fmt.Errorf("%w: sendDocument: %v", ErrTransport, err)
	}
	return nil
}

// SetWebhook points the bot's updates at url.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url %q: %w", url, err)
	}
	if _, err := c.bot.Request(wh); err != nil {
		return fmt.Errorf("%w: setWebhook: %v", ErrTransport, err)
	}
	return nil
}

// WebhookInfo reports what the Bot API currently has registered.
func (c *Client) WebhookInfo(ctx context.Context) (tgbotapi.WebhookInfo, error) {
	if err := ctx.Err(); err != nil {
		return tgbotapi.WebhookInfo{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	info, err := c.bot.GetWebhookInfo()
	if err != nil {
		return tgbotapi.WebhookInfo{}, fmt.Errorf("%w: getWebhookInfo: %v", ErrTransport, err)
	}
	return info, nil
}
