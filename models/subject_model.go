package models

type Subject struct {
	SubjectID uint   `gorm:"primaryKey" json:"subject_id"`
	Name      string `gorm:"size:255;not null;unique" json:"name"`
}
