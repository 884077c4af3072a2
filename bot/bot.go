package bot

import (
	"context"
	"log"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	config "github.com/dkotova/tutor_bot/configs"
	"github.com/dkotova/tutor_bot/notifications"
	"github.com/dkotova/tutor_bot/services"
)

const (
	deniedMessage         = "❌ Access restricted. Contact the bot administrator."
	payDeniedMessage      = "❌ Access to this command is restricted."
	genericFailureMessage = "❌ Something went wrong. Please try again later."
)

// TutorBot wires the Telegram surface to the schedule, ledger and
// selection services. All state lives here; there are no package globals.
type TutorBot struct {
	api      *tgbot.Bot
	cfg      *config.AppConfig
	schedule *services.ScheduleService
	ledger   *services.LedgerService
	study    *services.StudyService
	notifier *notifications.TelegramService
}

func New(cfg *config.AppConfig, schedule *services.ScheduleService, ledger *services.LedgerService, study *services.StudyService) (*TutorBot, error) {
	tb := &TutorBot{
		cfg:      cfg,
		schedule: schedule,
		ledger:   ledger,
		study:    study,
	}

	api, err := tgbot.New(cfg.BotToken,
		tgbot.WithMiddlewares(tb.accessMiddleware),
		tgbot.WithDefaultHandler(tb.handleText),
	)
	if err != nil {
		return nil, err
	}
	tb.api = api
	tb.notifier = notifications.NewTelegramService(api)

	api.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, tb.handleWelcome)
	api.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypeExact, tb.handleWelcome)
	api.RegisterHandler(tgbot.HandlerTypeMessageText, "/study", tgbot.MatchTypeExact, tb.handleStudy)
	api.RegisterHandler(tgbot.HandlerTypeMessageText, "/pay", tgbot.MatchTypeExact, tb.handlePay)
	// Single dispatcher: "pay_" is a prefix of the other payment tokens,
	// so per-prefix registration would match ambiguously.
	api.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, tb.handleCallback)

	return tb, nil
}

// Notifier exposes the payer fan-out for the reminder job.
func (tb *TutorBot) Notifier() *notifications.TelegramService {
	return tb.notifier
}

// Start long-polls for updates until the context is cancelled.
func (tb *TutorBot) Start(ctx context.Context) {
	log.Println("✅ Telegram bot started. Waiting for updates...")
	tb.api.Start(ctx)
}

// accessMiddleware is the first gate on every update: identities outside
// the general allow-list only ever see the denial message.
func (tb *TutorBot) accessMiddleware(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
		id := senderID(update)
		if !tb.cfg.IsAllowedUser(id) {
			log.Printf("Denied update from user %d", id)
			if chatID := chatIDOf(update); chatID != 0 {
				tb.sendText(ctx, chatID, deniedMessage)
			}
			return
		}
		next(ctx, api, update)
	}
}

func senderID(update *tgmodels.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	}
	return 0
}

func chatIDOf(update *tgmodels.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}

func (tb *TutorBot) sendText(ctx context.Context, chatID int64, text string) {
	_, err := tb.api.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

func (tb *TutorBot) sendMarkdown(ctx context.Context, chatID int64, text string) {
	_, err := tb.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgmodels.ParseModeMarkdown,
	})
	if err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

func inlineKeyboard(options []services.StudyOption) *tgmodels.InlineKeyboardMarkup {
	rows := make([][]tgmodels.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []tgmodels.InlineKeyboardButton{{Text: opt.Label, CallbackData: opt.CallbackData}})
	}
	return &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// clearKeyboard removes the inline buttons from an already-answered
// message so stale options cannot be clicked twice.
func (tb *TutorBot) clearKeyboard(ctx context.Context, chatID int64, messageID int) {
	_, err := tb.api.EditMessageReplyMarkup(ctx, &tgbot.EditMessageReplyMarkupParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		log.Printf("Error clearing inline keyboard: %v", err)
	}
}

func (tb *TutorBot) answerCallback(ctx context.Context, callbackID, text string) {
	_, err := tb.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		log.Printf("Error answering callback query: %v", err)
	}
}
