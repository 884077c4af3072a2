package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/dkotova/tutor_bot/models"
	"github.com/dkotova/tutor_bot/services"
)

const staleCallbackMessage = "Error: payment not found or already handled"

func (tb *TutorBot) handleCallback(ctx context.Context, api *tgbot.Bot, update *tgmodels.Update) {
	data := update.CallbackQuery.Data
	switch {
	case strings.HasPrefix(data, "subject_"):
		tb.handleSubjectSelection(ctx, update)
	case strings.HasPrefix(data, "payConfirm_"):
		tb.handlePaymentConfirm(ctx, update)
	case strings.HasPrefix(data, "payCancel_"):
		tb.handlePaymentCancel(ctx, update)
	case strings.HasPrefix(data, "payDelay_"):
		tb.handlePaymentDelay(ctx, update)
	case strings.HasPrefix(data, "pay_"):
		tb.handlePaymentDetails(ctx, update)
	default:
		tb.answerCallback(ctx, update.CallbackQuery.ID, "Unknown action")
	}
}

func (tb *TutorBot) handleSubjectSelection(ctx context.Context, update *tgmodels.Update) {
	call := update.CallbackQuery
	chatID := chatIDOf(update)
	log.Printf("User %d selected subject: %s", call.From.ID, call.Data)

	subjectID, err := strconv.ParseUint(strings.TrimPrefix(call.Data, "subject_"), 10, 64)
	if err != nil {
		tb.sendText(ctx, chatID, "❌ Invalid subject identifier.")
		return
	}

	tb.answerCallback(ctx, call.ID, fmt.Sprintf("Selected subject ID: %d", subjectID))
	tb.clearCallbackKeyboard(ctx, update)

	subject, found, err := tb.schedule.GetSubject(uint(subjectID))
	if err != nil {
		log.Printf("Error loading subject %d: %v", subjectID, err)
		tb.sendText(ctx, chatID, genericFailureMessage)
		return
	}
	if !found {
		tb.sendText(ctx, chatID, "❌ Subject not found.")
		return
	}

	identity := services.StudentIdentity{
		ID:        call.From.ID,
		FirstName: call.From.FirstName,
	}
	if call.From.Username != "" {
		username := call.From.Username
		identity.Username = &username
	}

	req, err := tb.study.ConfirmSelection(call.From.ID, uint(subjectID), identity)
	if errors.Is(err, services.ErrNotFound) {
		tb.sendText(ctx, chatID, "❌ Could not find subject details.")
		return
	}
	if err != nil {
		log.Printf("Error confirming selection for student %d: %v", call.From.ID, err)
		tb.sendText(ctx, chatID, genericFailureMessage)
		return
	}
	log.Printf("Payment request added: id=%d subject=%s price=%d student=%d", req.ID, subject.Name, req.Price, req.StudentID)

	tb.sendMarkdown(ctx, chatID, fmt.Sprintf("📝 Great! You picked: *%s*", subject.Name))
	tb.sendMarkdown(ctx, chatID, fmt.Sprintf("💰 Session price: *%d ₽*", req.Price))
	tb.sendText(ctx, chatID, "Sending a message to the parents — Mom, Dad, please pay for the tutor! 😉")

	notice := fmt.Sprintf("👤 %s picked a session of *%s*. Session price: *%d ₽*", call.From.FirstName, subject.Name, req.Price)
	results := tb.notifier.NotifyPayers(ctx, tb.cfg.PayerAllowList, call.From.ID, notice)
	for _, res := range results {
		if res.Err != nil {
			log.Printf("Error notifying payer %d: %v", res.Recipient, res.Err)
		}
	}
}

func (tb *TutorBot) handlePaymentDetails(ctx context.Context, update *tgmodels.Update) {
	call := update.CallbackQuery
	chatID := chatIDOf(update)
	tb.clearCallbackKeyboard(ctx, update)

	req, ok := tb.findActive(call.Data, "pay_")
	if !ok {
		tb.answerCallback(ctx, call.ID, staleCallbackMessage)
		return
	}

	tutor, err := tb.schedule.GetTutor(req.TutorID)
	if err != nil {
		log.Printf("Error loading tutor %s: %v", req.TutorID, err)
		tb.sendText(ctx, chatID, genericFailureMessage)
		return
	}

	details := fmt.Sprintf(
		"📄 *Payment details*\n\n📚 Subject: *%s*\n🎓 Tutor: %s\n🏦 Bank: %s\n💰 Amount: %d ₽\n\nChoose an action:",
		req.Subject.Name, tutor.Name, tutor.Bank, req.Price,
	)
	buttons := [][]tgmodels.InlineKeyboardButton{
		{{Text: "✅ Confirm payment", CallbackData: fmt.Sprintf("payConfirm_%d", req.ID)}},
		{{Text: "🕒 Pay later", CallbackData: fmt.Sprintf("payDelay_%d", req.ID)}},
		{{Text: "❌ Reject payment", CallbackData: fmt.Sprintf("payCancel_%d", req.ID)}},
	}
	_, err = tb.api.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        details,
		ParseMode:   tgmodels.ParseModeMarkdown,
		ReplyMarkup: &tgmodels.InlineKeyboardMarkup{InlineKeyboard: buttons},
	})
	if err != nil {
		log.Printf("Error sending payment details to chat %d: %v", chatID, err)
	}
}

func (tb *TutorBot) handlePaymentConfirm(ctx context.Context, update *tgmodels.Update) {
	call := update.CallbackQuery
	chatID := chatIDOf(update)
	tb.clearCallbackKeyboard(ctx, update)

	req, ok := tb.findActive(call.Data, "payConfirm_")
	if !ok {
		tb.answerCallback(ctx, call.ID, staleCallbackMessage)
		return
	}

	if _, err := tb.ledger.SetStatus(req.ID, models.StatusComplete); err != nil {
		log.Printf("Error confirming payment %d: %v", req.ID, err)
		tb.sendText(ctx, chatID, genericFailureMessage)
		return
	}
	log.Printf("Payment confirmed: id=%d subject=%s price=%d", req.ID, req.Subject.Name, req.Price)

	tb.answerCallback(ctx, call.ID, fmt.Sprintf("Paid: %s", req.Subject.Name))
	tb.sendMarkdown(ctx, chatID, fmt.Sprintf("✅ You paid for a session of *%s* (%d ₽)!", req.Subject.Name, req.Price))
	tb.sendMarkdown(ctx, req.StudentID, fmt.Sprintf("✅ Your session of *%s* is paid.", req.Subject.Name))
}

func (tb *TutorBot) handlePaymentCancel(ctx context.Context, update *tgmodels.Update) {
	call := update.CallbackQuery
	chatID := chatIDOf(update)
	tb.clearCallbackKeyboard(ctx, update)

	req, ok := tb.findActive(call.Data, "payCancel_")
	if !ok {
		tb.answerCallback(ctx, call.ID, staleCallbackMessage)
		return
	}

	if _, err := tb.ledger.SetStatus(req.ID, models.StatusCancel); err != nil {
		log.Printf("Error cancelling payment %d: %v", req.ID, err)
		tb.sendText(ctx, chatID, genericFailureMessage)
		return
	}
	log.Printf("Payment cancelled: id=%d subject=%s", req.ID, req.Subject.Name)

	tb.answerCallback(ctx, call.ID, fmt.Sprintf("Cancelled: %s", req.Subject.Name))
	tb.sendMarkdown(ctx, chatID, fmt.Sprintf("❌ Payment for *%s* was cancelled.", req.Subject.Name))
}

// handlePaymentDelay acknowledges without touching the ledger: the
// request simply stays NEW.
func (tb *TutorBot) handlePaymentDelay(ctx context.Context, update *tgmodels.Update) {
	call := update.CallbackQuery
	chatID := chatIDOf(update)
	tb.clearCallbackKeyboard(ctx, update)

	req, ok := tb.findActive(call.Data, "payDelay_")
	if !ok {
		tb.answerCallback(ctx, call.ID, staleCallbackMessage)
		return
	}
	log.Printf("Payment delayed: id=%d subject=%s", req.ID, req.Subject.Name)

	tb.answerCallback(ctx, call.ID, fmt.Sprintf("Delayed: %s", req.Subject.Name))
	tb.sendMarkdown(ctx, chatID, fmt.Sprintf("🕒 Payment for *%s* was delayed.", req.Subject.Name))
}

// findActive parses the payment id out of the callback token and looks it
// up among the still-active requests. Completed and cancelled requests
// are treated the same as unknown ids.
func (tb *TutorBot) findActive(data, prefix string) (models.PaymentRequest, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return models.PaymentRequest{}, false
	}
	requests, err := tb.ledger.ListActive()
	if err != nil {
		log.Printf("Error listing active payment requests: %v", err)
		return models.PaymentRequest{}, false
	}
	for _, req := range requests {
		if req.ID == uint(id) {
			return req, true
		}
	}
	return models.PaymentRequest{}, false
}

func (tb *TutorBot) clearCallbackKeyboard(ctx context.Context, update *tgmodels.Update) {
	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	tb.clearKeyboard(ctx, msg.Chat.ID, msg.ID)
}
