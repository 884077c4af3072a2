package jobs

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dkotova/tutor_bot/notifications"
	"github.com/dkotova/tutor_bot/services"
)

// PaymentReminder periodically nudges the payers about requests still
// waiting on them.
type PaymentReminder struct {
	ledger   *services.LedgerService
	notifier *notifications.TelegramService
	payers   []int64
}

func NewPaymentReminder(ledger *services.LedgerService, notifier *notifications.TelegramService, payers []int64) *PaymentReminder {
	return &PaymentReminder{ledger: ledger, notifier: notifier, payers: payers}
}

func (j *PaymentReminder) Run() {
	log.Println("Running job: PaymentReminder...")

	active, err := j.ledger.ListActive()
	if err != nil {
		log.Printf("Error checking for pending payment requests: %v", err)
		return
	}
	if len(active) == 0 {
		return
	}

	lines := []string{"Reminder, unpaid sessions:"}
	for i, req := range active {
		lines = append(lines, fmt.Sprintf("%d. %s — %s (%s)", i+1, req.CreatedAt.Format("2006-01-02 15:04"), req.Subject.Name, req.FirstName))
	}

	results := j.notifier.NotifyPayers(context.Background(), j.payers, 0, strings.Join(lines, "\n"))
	for _, res := range results {
		if res.Err != nil {
			log.Printf("Error reminding payer %d: %v", res.Recipient, res.Err)
		}
	}
}
