package services

import (
	"errors"

	"github.com/dkotova/tutor_bot/models"
	"github.com/dkotova/tutor_bot/websocket"
	"gorm.io/gorm"
)

// LedgerService is the sole writer of payment request status. The hub is
// optional; when present, ledger changes are pushed to dashboard sessions.
type LedgerService struct {
	db  *gorm.DB
	hub *websocket.Hub
}

func NewLedgerService(db *gorm.DB, hub *websocket.Hub) *LedgerService {
	return &LedgerService{db: db, hub: hub}
}

// Create inserts a new request in status NEW and returns its id. There is
// no duplicate-submission guard: a student may request the same subject
// any number of times.
func (s *LedgerService) Create(req *models.PaymentRequest) (uint, error) {
	req.Status = models.StatusNew
	if err := s.db.Omit("Subject", "Tutor").Create(req).Error; err != nil {
		return 0, storageErr("create payment request", err)
	}
	s.publish("created", req.ID)
	return req.ID, nil
}

// ListActive returns every NEW request, oldest first.
func (s *LedgerService) ListActive() ([]models.PaymentRequest, error) {
	var reqs []models.PaymentRequest
	err := s.db.Preload("Subject").
		Where("status = ?", models.StatusNew).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, storageErr("list active payment requests", err)
	}
	return reqs, nil
}

// ListAll returns the full ledger regardless of status, newest first,
// with the subject loaded for display.
func (s *LedgerService) ListAll() ([]models.PaymentRequest, error) {
	var reqs []models.PaymentRequest
	err := s.db.Preload("Subject").
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, storageErr("list payment requests", err)
	}
	return reqs, nil
}

func (s *LedgerService) GetByID(id uint) (models.PaymentRequest, bool, error) {
	var req models.PaymentRequest
	err := s.db.Preload("Subject").Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PaymentRequest{}, false, nil
	}
	if err != nil {
		return models.PaymentRequest{}, false, storageErr("get payment request", err)
	}
	return req, true, nil
}

// SetStatus overwrites the status unconditionally and reports whether a
// row was affected. There is no transition check: a COMPLETE request can
// still be flipped to CANCEL. Callers gate actions on the active list
// instead.
func (s *LedgerService) SetStatus(id uint, status string) (bool, error) {
	res := s.db.Model(&models.PaymentRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return false, storageErr("update payment status", res.Error)
	}
	if res.RowsAffected > 0 {
		s.publish("status", id)
	}
	return res.RowsAffected > 0, nil
}

func (s *LedgerService) publish(eventType string, id uint) {
	if s.hub == nil {
		return
	}
	req, found, err := s.GetByID(id)
	if err != nil || !found {
		return
	}
	s.hub.Publish(websocket.LedgerEvent{
		Type:      eventType,
		PaymentID: req.ID,
		Status:    req.Status,
		Subject:   req.Subject.Name,
		Student:   req.FirstName,
		Price:     req.Price,
		CreatedAt: req.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}
