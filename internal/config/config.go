package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
	Storage  StorageConfig  `yaml:"storage"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Queue    QueueConfig    `yaml:"queue"`
	CORS     CORSConfig     `yaml:"cors"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	Timezone string `yaml:"timezone"`

	Location *time.Location `yaml:"-"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
	MinConns int32  `yaml:"min_conns"`
}

// TelegramConfig holds the bot credentials and the chat reports are sent to.
type TelegramConfig struct {
	BotToken   string `yaml:"bot_token"`
	ChatID     string `yaml:"chat_id"`
	WebhookURL string `yaml:"webhook_url"`
	// Endpoint is the Bot API URL pattern, "%s" placeholders for token and method.
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`

	ChatIDValue int64 `yaml:"-"`
}

type StorageConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

// ScheduleConfig holds trigger times as "HH:MM" in the application timezone.
type ScheduleConfig struct {
	DailyReminderTime   string `yaml:"daily_reminder_time"`
	PendingReminderTime string `yaml:"pending_reminder_time"`
	WeeklyReportDay     string `yaml:"weekly_report_day"`
	WeeklyReportTime    string `yaml:"weekly_report_time"`
	MondayRule          string `yaml:"daily_summary_monday_rule"`

	Weekday time.Weekday        `yaml:"-"`
	Rule    calendar.MondayRule `yaml:"-"`
}

type QueueConfig struct {
	Workers int `yaml:"workers"`
	Size    int `yaml:"size"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Port:     8080,
			Env:      "development",
			LogLevel: "info",
			Timezone: "Asia/Jakarta",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "timesheet",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 2,
		},
		Telegram: TelegramConfig{
			Endpoint: "https://api.telegram.org/bot%s/%s",
			Timeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			BasePath: "./storage",
			BaseURL:  "http://localhost:8080/files",
		},
		Schedule: ScheduleConfig{
			DailyReminderTime:   "17:30",
			PendingReminderTime: "19:00",
			WeeklyReportDay:     "friday",
			WeeklyReportTime:    "18:00",
			MondayRule:          string(calendar.MondayRuleAdjust),
		},
		Queue: QueueConfig{
			Workers: 2,
			Size:    32,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads .env (optional), then the YAML file named by CONFIG_PATH
// (optional), then environment variables. Later sources win.
func Load() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadDatabase reads the same sources as Load but only requires the database
// section. Used by tooling that never talks to Telegram.
func LoadDatabase() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	if config.Database.Host == "" || config.Database.Name == "" {
		return nil, fmt.Errorf("configuration validation failed: DB_HOST and DB_NAME are required")
	}
	return config, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	slog.Info("Config: loaded file", "path", path)
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	// Application configuration
	if c.App.Port, err = getEnvInt("APP_PORT", c.App.Port); err != nil {
		return err
	}
	c.App.Env = getEnv("APP_ENV", c.App.Env)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)
	c.App.Timezone = getEnv("APP_TIMEZONE", c.App.Timezone)

	// Database configuration
	if c.Database.Port, err = getEnvInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)

	// Telegram configuration
	c.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", c.Telegram.BotToken)
	c.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", c.Telegram.ChatID)
	c.Telegram.WebhookURL = getEnv("TELEGRAM_WEBHOOK_URL", c.Telegram.WebhookURL)
	c.Telegram.Endpoint = getEnv("TELEGRAM_API_ENDPOINT", c.Telegram.Endpoint)
	if raw := getEnv("TELEGRAM_TIMEOUT", ""); raw != "" {
		if c.Telegram.Timeout, err = time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid TELEGRAM_TIMEOUT: %w", err)
		}
	}

	// Storage configuration
	c.Storage.BasePath = getEnv("STORAGE_BASE_PATH", c.Storage.BasePath)
	c.Storage.BaseURL = getEnv("STORAGE_BASE_URL", c.Storage.BaseURL)

	// Schedule configuration
	c.Schedule.DailyReminderTime = getEnv("DAILY_REMINDER_TIME", c.Schedule.DailyReminderTime)
	c.Schedule.PendingReminderTime = getEnv("PENDING_REMINDER_TIME", c.Schedule.PendingReminderTime)
	c.Schedule.WeeklyReportDay = getEnv("WEEKLY_REPORT_DAY", c.Schedule.WeeklyReportDay)
	c.Schedule.WeeklyReportTime = getEnv("WEEKLY_REPORT_TIME", c.Schedule.WeeklyReportTime)
	c.Schedule.MondayRule = getEnv("DAILY_SUMMARY_MONDAY_RULE", c.Schedule.MondayRule)

	// Queue configuration
	if c.Queue.Workers, err = getEnvInt("QUEUE_WORKERS", c.Queue.Workers); err != nil {
		return err
	}
	if c.Queue.Size, err = getEnvInt("QUEUE_SIZE", c.Queue.Size); err != nil {
		return err
	}

	if origins := getEnvSlice("CORS_ALLOWED_ORIGINS"); len(origins) > 0 {
		c.CORS.AllowedOrigins = origins
	}
	return nil
}

// Validate checks required values and resolves the derived fields.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if !validator.IsValidChatID(c.Telegram.ChatID) {
		return fmt.Errorf("TELEGRAM_CHAT_ID must be numeric, got %q", c.Telegram.ChatID)
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(c.Telegram.ChatID), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}
	c.Telegram.ChatIDValue = chatID

	if c.Telegram.Timeout <= 0 {
		return fmt.Errorf("TELEGRAM_TIMEOUT must be positive")
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	c.App.Location = loc

	for key, value := range map[string]string{
		"DAILY_REMINDER_TIME":   c.Schedule.DailyReminderTime,
		"PENDING_REMINDER_TIME": c.Schedule.PendingReminderTime,
		"WEEKLY_REPORT_TIME":    c.Schedule.WeeklyReportTime,
	} {
		if _, _, ok := validator.ParseClock(value); !ok {
			return fmt.Errorf("%s must be HH:MM, got %q", key, value)
		}
	}

	weekday, ok := parseWeekday(c.Schedule.WeeklyReportDay)
	if !ok {
		return fmt.Errorf("WEEKLY_REPORT_DAY must be a weekday name, got %q", c.Schedule.WeeklyReportDay)
	}
	c.Schedule.Weekday = weekday

	rule, err := calendar.ParseMondayRule(c.Schedule.MondayRule)
	if err != nil {
		return fmt.Errorf("DAILY_SUMMARY_MONDAY_RULE: %w", err)
	}
	c.Schedule.Rule = rule

	if c.Queue.Workers < 1 {
		return fmt.Errorf("QUEUE_WORKERS must be at least 1")
	}
	if c.Queue.Size < 1 {
		return fmt.Errorf("QUEUE_SIZE must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps App.LogLevel onto slog.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, true
		}
	}
	return 0, false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
