package routes

import (
	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dkotova/tutor_bot/handlers"
	"github.com/dkotova/tutor_bot/middleware"
	ws "github.com/dkotova/tutor_bot/websocket"
)

func DashboardRoutes(app *fiber.App, h *handlers.DashboardHandler, hub *ws.Hub, sessionSecret string) {
	app.Get("/login", h.Login)
	app.Post("/auth", h.Auth)

	protected := middleware.Protected(sessionSecret)
	app.Get("/", protected, h.Index)
	app.Get("/payments", protected, h.Payments)
	app.Get("/payments/:id/receipt", protected, h.Receipt)

	app.Use("/ws", protected, func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", fiberws.New(func(conn *fiberws.Conn) {
		client := &ws.Client{SessionID: uuid.New(), Conn: conn}
		hub.Register(client)
		defer hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
