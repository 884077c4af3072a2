package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	config "github.com/dkotova/tutor_bot/configs"
	"github.com/dkotova/tutor_bot/services"
	"github.com/dkotova/tutor_bot/utils"
)

const sessionLifetime = 12 * time.Hour

var validate = validator.New()

type DashboardHandler struct {
	cfg       *config.AppConfig
	ledger    *services.LedgerService
	receipts  *services.ReceiptService
	templates *template.Template
}

func NewDashboardHandler(cfg *config.AppConfig, ledger *services.LedgerService, receipts *services.ReceiptService, templatesDir string) (*DashboardHandler, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &DashboardHandler{cfg: cfg, ledger: ledger, receipts: receipts, templates: templates}, nil
}

func (h *DashboardHandler) render(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	return h.render(c, "index.html", nil)
}

func (h *DashboardHandler) Login(c *fiber.Ctx) error {
	return h.render(c, "login.html", fiber.Map{"Error": c.Query("error")})
}

type authRequest struct {
	OTP string `form:"otp" validate:"required,numeric,len=6"`
}

// Auth checks the submitted one-time code and, when valid, issues the
// signed session cookie. There are no per-user accounts: one shared
// secret gates the whole dashboard.
func (h *DashboardHandler) Auth(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/login?error=invalid", fiber.StatusFound)
	}
	if err := validate.Struct(&req); err != nil {
		return c.Redirect("/login?error=invalid", fiber.StatusFound)
	}
	if !utils.VerifyTOTP(h.cfg.TOTPSecret, req.OTP) {
		log.Println("Dashboard login rejected: invalid one-time code")
		return c.Redirect("/login?error=invalid", fiber.StatusFound)
	}

	claims := jwt.MapClaims{
		"logged_in": true,
		"exp":       time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.cfg.SessionSecret))
	if err != nil {
		log.Printf("Error signing session token: %v", err)
		return fiber.ErrInternalServerError
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    t,
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusFound)
}

func (h *DashboardHandler) Payments(c *fiber.Ctx) error {
	payments, err := h.ledger.ListAll()
	if err != nil {
		log.Printf("Error listing payments: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}
	return h.render(c, "payments.html", fiber.Map{"Payments": payments})
}

func (h *DashboardHandler) Receipt(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	pdf, err := h.receipts.Generate(c.Context(), uint(id))
	if errors.Is(err, services.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Payment not found or not completed")
	}
	if err != nil {
		log.Printf("Error generating receipt for payment %d: %v", id, err)
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=receipt_%d.pdf", id))
	return c.Send(pdf)
}
