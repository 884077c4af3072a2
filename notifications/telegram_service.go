package notifications

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

// MessageSender is the slice of the Telegram client the notifier needs.
// *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error)
}

type TelegramService struct {
	sender MessageSender
}

func NewTelegramService(sender MessageSender) *TelegramService {
	return &TelegramService{sender: sender}
}

// DeliveryResult records the outcome of one recipient's notification.
type DeliveryResult struct {
	Recipient int64
	Err       error
}

// NotifyPayers sends text to every payer except exclude. Failures are
// isolated per recipient: one blocked chat never stops the rest.
func (s *TelegramService) NotifyPayers(ctx context.Context, payers []int64, exclude int64, text string) []DeliveryResult {
	var results []DeliveryResult
	for _, payer := range payers {
		if payer == exclude {
			continue
		}
		err := s.Send(ctx, payer, text)
		results = append(results, DeliveryResult{Recipient: payer, Err: err})
	}
	return results
}

// Send delivers a single Markdown message, logging any failure.
func (s *TelegramService) Send(ctx context.Context, chatID int64, text string) error {
	_, err := s.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgmodels.ParseModeMarkdown,
	})
	if err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
	return err
}
