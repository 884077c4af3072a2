package models

import "time"

const (
	StatusNew      = "NEW"
	StatusComplete = "COMPLETE"
	StatusCancel   = "CANCEL"
)

// PaymentRequest is one row of the ledger. Rows are only ever appended or
// have their status overwritten, never deleted.
type PaymentRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StudentID int64     `gorm:"not null" json:"student_id"`
	Username  *string   `gorm:"size:255" json:"username"`
	FirstName string    `gorm:"size:255;not null" json:"first_name"`
	SubjectID uint      `gorm:"not null" json:"subject_id"`
	TutorID   string    `gorm:"size:64;not null" json:"tutor_id"`
	Price     int       `gorm:"not null" json:"price"`
	Status    string    `gorm:"size:20;not null;default:'NEW'" json:"status"`

	Subject Subject `gorm:"foreignKey:SubjectID" json:"-"`
	Tutor   Tutor   `gorm:"foreignKey:TutorID" json:"-"`
}
