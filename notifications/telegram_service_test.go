package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

type fakeSender struct {
	sent    []int64
	failFor map[int64]error
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error) {
	chatID := params.ChatID.(int64)
	if err, ok := f.failFor[chatID]; ok {
		return nil, err
	}
	f.sent = append(f.sent, chatID)
	return &tgmodels.Message{}, nil
}

func TestNotifyPayers_ExcludesSelector(t *testing.T) {
	sender := &fakeSender{}
	svc := NewTelegramService(sender)

	results := svc.NotifyPayers(context.Background(), []int64{10, 20, 30}, 20, "pay up")
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %d: %v", res.Recipient, res.Err)
		}
	}
	if len(sender.sent) != 2 || sender.sent[0] != 10 || sender.sent[1] != 30 {
		t.Errorf("want deliveries to [10 30], got %v", sender.sent)
	}
}

func TestNotifyPayers_PartialFailure(t *testing.T) {
	blocked := errors.New("bot was blocked by the user")
	sender := &fakeSender{failFor: map[int64]error{20: blocked}}
	svc := NewTelegramService(sender)

	results := svc.NotifyPayers(context.Background(), []int64{10, 20, 30}, 0, "pay up")
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}

	byRecipient := map[int64]error{}
	for _, res := range results {
		byRecipient[res.Recipient] = res.Err
	}
	if byRecipient[10] != nil || byRecipient[30] != nil {
		t.Errorf("healthy recipients failed: %v", byRecipient)
	}
	if !errors.Is(byRecipient[20], blocked) {
		t.Errorf("want blocked error for 20, got %v", byRecipient[20])
	}
	// One failing chat never stops delivery to the rest.
	if len(sender.sent) != 2 {
		t.Errorf("want 2 successful deliveries, got %v", sender.sent)
	}
}
