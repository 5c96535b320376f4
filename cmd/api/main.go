package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/queue"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/telegram"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	artifactService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/artifact"
	botService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/bot"
	reminderService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/reminder"
	reportService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	bot, err := telegram.NewClient(telegram.Config{
		Token:    cfg.Telegram.BotToken,
		Endpoint: cfg.Telegram.Endpoint,
		Timeout:  cfg.Telegram.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize telegram client: ", err)
	}
	slog.Info("Telegram bot authorized", "username", bot.Username())

	clock := calendar.SystemClock(cfg.App.Location)
	artifactSvc := artifactService.NewArtifactService(fileStorage)
	reportSvc := reportService.NewReportService(employeeRepo, timesheetRepo, leaveRepo, holidayRepo, artifactSvc, clock)
	dispatcher := reminderService.NewDispatcher(reportSvc, bot, cfg.Telegram.ChatIDValue)
	botSvc := botService.NewBotService(employeeRepo, reportSvc, bot, clock, cfg.Schedule.Rule)

	taskQueue := queue.New(queue.Config{
		Workers: cfg.Queue.Workers,
		Size:    cfg.Queue.Size,
	})
	taskQueue.Start()

	reminderJobs := cron.NewReminderJobs(taskQueue, dispatcher, cfg.Schedule, cfg.App.Location, clock)
	scheduler := cron.NewScheduler()
	if err := reminderJobs.RegisterJobs(scheduler); err != nil {
		log.Fatal("Failed to register reminder jobs: ", err)
	}
	scheduler.Start()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			PublicDir:      filepath.Join(cfg.Storage.BasePath, "public"),
		},
		appHTTP.NewTelegramHandler(botSvc),
		appHTTP.NewReportHandler(reportSvc, bot, cfg.Telegram.ChatIDValue, clock),
		appHTTP.NewReminderHandler(reminderJobs),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
	taskQueue.Stop()
}
