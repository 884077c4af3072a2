package models

// ScheduleEntry associates a subject with a tutor and a price, either for
// one student or, when StudentID is nil, as the default for everyone.
type ScheduleEntry struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID *int64 `gorm:"uniqueIndex:idx_schedule_student_subject" json:"student_id"`
	SubjectID uint   `gorm:"not null;uniqueIndex:idx_schedule_student_subject" json:"subject_id"`
	TutorID   string `gorm:"size:64;not null" json:"tutor_id"`
	Price     int    `gorm:"not null" json:"price"`

	Subject Subject `gorm:"foreignKey:SubjectID" json:"-"`
	Tutor   Tutor   `gorm:"foreignKey:TutorID" json:"-"`
}

func (ScheduleEntry) TableName() string { return "schedule" }
