package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

func (tb *TutorBot) handleWelcome(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
	msg := update.Message
	log.Printf("User %d sent command: %s", msg.From.ID, msg.Text)
	tb.sendText(ctx, msg.Chat.ID, "Hi! I help you pay for tutoring sessions.")
}

func (tb *TutorBot) handleStudy(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
	msg := update.Message
	log.Printf("User %d sent command: %s", msg.From.ID, msg.Text)

	prompt, options, err := tb.study.ListSubjectsForStudent(msg.From.ID)
	if err != nil {
		log.Printf("Error listing subjects for student %d: %v", msg.From.ID, err)
		tb.sendText(ctx, msg.Chat.ID, genericFailureMessage)
		return
	}

	_, err = tb.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        msg.From.FirstName + ", " + prompt,
		ReplyMarkup: inlineKeyboard(options),
	})
	if err != nil {
		log.Printf("Error sending subject list to chat %d: %v", msg.Chat.ID, err)
	}
}

func (tb *TutorBot) handlePay(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
	msg := update.Message
	if !tb.cfg.IsPayer(msg.From.ID) {
		log.Printf("User %d denied access to /pay", msg.From.ID)
		tb.sendText(ctx, msg.Chat.ID, payDeniedMessage)
		return
	}

	log.Printf("User %d requested the payment list", msg.From.ID)

	requests, err := tb.ledger.ListActive()
	if err != nil {
		log.Printf("Error listing active payment requests: %v", err)
		tb.sendText(ctx, msg.Chat.ID, genericFailureMessage)
		return
	}
	if len(requests) == 0 {
		tb.sendText(ctx, msg.Chat.ID, "Everything is paid! 🎉")
		return
	}

	lines := []string{"Unpaid sessions:"}
	for i, req := range requests {
		lines = append(lines, fmt.Sprintf("%d. %s — %s (%s)", i+1, req.CreatedAt.Format("2006-01-02 15:04"), req.Subject.Name, req.FirstName))
	}
	tb.sendText(ctx, msg.Chat.ID, strings.Join(lines, "\n"))

	rows := make([][]tgmodels.InlineKeyboardButton, 0, len(requests))
	for _, req := range requests {
		rows = append(rows, []tgmodels.InlineKeyboardButton{{
			Text:         fmt.Sprintf("Pay: %s (%s)", req.Subject.Name, req.FirstName),
			CallbackData: fmt.Sprintf("pay_%d", req.ID),
		}})
	}
	_, err = tb.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Choose what to pay for",
		ReplyMarkup: &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		log.Printf("Error sending payment list to chat %d: %v", msg.Chat.ID, err)
	}
}

func (tb *TutorBot) handleText(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	log.Printf("User %d sent message: %s", msg.From.ID, msg.Text)
	tb.sendText(ctx, msg.Chat.ID, "Message received, but not handled.")
}
