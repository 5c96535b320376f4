package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
)

// webhook registers the bot's webhook URL with the Bot API and prints what
// Telegram reports back.
func main() {
	url := flag.String("url", "", "public webhook URL (defaults to TELEGRAM_WEBHOOK_URL)")
	infoOnly := flag.Bool("info", false, "only print the current webhook info")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client, err := telegram.NewClient(telegram.Config{
		Token:    cfg.Telegram.BotToken,
		Endpoint: cfg.Telegram.Endpoint,
		Timeout:  cfg.Telegram.Timeout,
	})
	if err != nil {
		log.Fatalf("failed to initialize telegram client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !*infoOnly {
		target := *url
		if target == "" {
			target = cfg.Telegram.WebhookURL
		}
		if target == "" {
			log.Fatal("no webhook URL given: pass -url or set TELEGRAM_WEBHOOK_URL")
		}
		if err := client.SetWebhook(ctx, target); err != nil {
			log.Fatalf("set webhook: %v", err)
		}
		log.Printf("webhook set for @%s: %s", client.Username(), target)
	}

	info, err := client.WebhookInfo(ctx)
	if err != nil {
		log.Fatalf("get webhook info: %v", err)
	}
	log.Printf("url=%q pending_updates=%d last_error=%q", info.URL, info.PendingUpdateCount, info.LastErrorMessage)
}
