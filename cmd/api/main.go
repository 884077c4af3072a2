package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/dkotova/tutor_bot/bot"
	config "github.com/dkotova/tutor_bot/configs"
	"github.com/dkotova/tutor_bot/database"
	"github.com/dkotova/tutor_bot/handlers"
	"github.com/dkotova/tutor_bot/jobs"
	"github.com/dkotova/tutor_bot/routes"
	"github.com/dkotova/tutor_bot/services"
	ws "github.com/dkotova/tutor_bot/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}

	db, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("🔥 Failed to seed database: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	schedule := services.NewScheduleService(db)
	ledger := services.NewLedgerService(db, hub)
	study := services.NewStudyService(schedule, ledger)
	receipts, err := services.NewReceiptService(ledger, schedule, "templates")
	if err != nil {
		log.Fatalf("🔥 Failed to load receipt template: %v", err)
	}

	tb, err := bot.New(cfg, schedule, ledger, study)
	if err != nil {
		log.Fatalf("🔥 Failed to create Telegram bot: %v", err)
	}

	c := cron.New()
	reminder := jobs.NewPaymentReminder(ledger, tb.Notifier(), cfg.PayerAllowList)
	if _, err := c.AddFunc(cfg.ReminderSchedule, reminder.Run); err != nil {
		log.Fatalf("🔥 Invalid reminder schedule %q: %v", cfg.ReminderSchedule, err)
	}
	c.Start()
	log.Println("✅ Cron job for payment reminders scheduled successfully.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go tb.Start(ctx)

	dashboard, err := handlers.NewDashboardHandler(cfg, ledger, receipts, "templates")
	if err != nil {
		log.Fatalf("🔥 Failed to load dashboard templates: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Tutor Payments",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.DashboardRoutes(app, dashboard, hub, cfg.SessionSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
