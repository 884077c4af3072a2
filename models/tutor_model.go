package models

type Tutor struct {
	TutorID string `gorm:"primaryKey;size:64" json:"tutor_id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Phone   string `gorm:"size:64;not null" json:"phone"`
	Bank    string `gorm:"size:255;not null" json:"bank"`
}
