package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// AppConfig is built once in main and passed by reference into every
// component. Handlers never reach for environment variables themselves.
type AppConfig struct {
	BotToken      string `validate:"required"`
	DatabaseURL   string `validate:"required"`
	SessionSecret string `validate:"required"`
	TOTPSecret    string `validate:"required"`

	UserAllowList  []int64
	PayerAllowList []int64

	Port             string
	ReminderSchedule string
}

var validate = validator.New()

// Load reads and validates the full configuration. A missing secret is
// fatal: the caller is expected to refuse to start.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		BotToken:         Config("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      Config("DATABASE_URL"),
		SessionSecret:    Config("SESSION_SECRET"),
		TOTPSecret:       Config("TOTP_SECRET"),
		UserAllowList:    parseIDList("USER_WHITE_LIST", Config("USER_WHITE_LIST")),
		PayerAllowList:   parseIDList("PAY_LIST", Config("PAY_LIST")),
		Port:             Config("PORT"),
		ReminderSchedule: Config("REMINDER_SCHEDULE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ReminderSchedule == "" {
		cfg.ReminderSchedule = "0 9 * * *"
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("User allow-list: %v", cfg.UserAllowList)
	log.Printf("Payer allow-list: %v", cfg.PayerAllowList)
	return cfg, nil
}

// parseIDList splits a comma-separated list of Telegram ids. Malformed
// entries are skipped, not fatal, matching how operators edit these by hand.
func parseIDList(name, raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("Skipping malformed entry %q in %s. Entries must be numbers separated by commas.", part, name)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *AppConfig) IsAllowedUser(id int64) bool { return containsID(c.UserAllowList, id) }

func (c *AppConfig) IsPayer(id int64) bool { return containsID(c.PayerAllowList, id) }

func containsID(list []int64, id int64) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
