package services

import (
	"bytes"
	"context"
	"html/template"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/dkotova/tutor_bot/models"
)

// ReceiptService renders a printable PDF receipt for a completed payment.
type ReceiptService struct {
	ledger   *LedgerService
	schedule *ScheduleService
	tmpl     *template.Template
}

func NewReceiptService(ledger *LedgerService, schedule *ScheduleService, templatesDir string) (*ReceiptService, error) {
	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, "receipt.html"))
	if err != nil {
		return nil, err
	}
	return &ReceiptService{ledger: ledger, schedule: schedule, tmpl: tmpl}, nil
}

// Generate returns the receipt PDF for a payment. Only COMPLETE payments
// have receipts; anything else is ErrNotFound.
func (s *ReceiptService) Generate(ctx context.Context, paymentID uint) ([]byte, error) {
	req, found, err := s.ledger.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if !found || req.Status != models.StatusComplete {
		return nil, ErrNotFound
	}

	tutor, err := s.schedule.GetTutor(req.TutorID)
	if err != nil {
		return nil, err
	}

	htmlContent, err := s.renderHTML(req, tutor)
	if err != nil {
		return nil, err
	}
	return generatePDFFromHTML(ctx, htmlContent)
}

func (s *ReceiptService) renderHTML(req models.PaymentRequest, tutor models.Tutor) (string, error) {
	data := struct {
		PaymentID   uint
		Date        string
		StudentName string
		SubjectName string
		TutorName   string
		Bank        string
		Price       int
		IssuedAt    string
	}{
		PaymentID:   req.ID,
		Date:        req.CreatedAt.Format("2006-01-02 15:04"),
		StudentName: req.FirstName,
		SubjectName: req.Subject.Name,
		TutorName:   tutor.Name,
		Bank:        tutor.Bank,
		Price:       req.Price,
		IssuedAt:    time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := s.tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(parent context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
