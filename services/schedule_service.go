package services

import (
	"errors"

	"github.com/dkotova/tutor_bot/models"
	"gorm.io/gorm"
)

type ScheduleService struct {
	db *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{db: db}
}

// ScheduleItem is one row of a student's resolved schedule.
type ScheduleItem struct {
	SubjectID   uint
	SubjectName string
	TutorID     string
	Price       int
}

// GetTutor never reports an unknown id: callers render whatever comes
// back, so a placeholder record stands in for missing tutors.
func (s *ScheduleService) GetTutor(tutorID string) (models.Tutor, error) {
	var tutor models.Tutor
	err := s.db.Where("tutor_id = ?", tutorID).First(&tutor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Tutor{TutorID: "tutor_default", Name: "unspecified", Phone: "unspecified", Bank: "unspecified"}, nil
	}
	if err != nil {
		return models.Tutor{}, storageErr("get tutor", err)
	}
	return tutor, nil
}

func (s *ScheduleService) GetSubject(subjectID uint) (models.Subject, bool, error) {
	var subject models.Subject
	err := s.db.Where("subject_id = ?", subjectID).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Subject{}, false, nil
	}
	if err != nil {
		return models.Subject{}, false, storageErr("get subject", err)
	}
	return subject, true, nil
}

// GetScheduleForStudent resolves the student's visible schedule:
// student-specific rows when any exist, otherwise the default
// (student-less) rows. The fallback is exact, never a merge.
func (s *ScheduleService) GetScheduleForStudent(studentID int64) ([]ScheduleItem, error) {
	items, err := s.scheduleWhere("schedule.student_id = ?", studentID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		return items, nil
	}
	return s.GetDefaultSchedule()
}

// GetDefaultSchedule returns the entries that apply to every student
// without an individual schedule.
func (s *ScheduleService) GetDefaultSchedule() ([]ScheduleItem, error) {
	return s.scheduleWhere("schedule.student_id IS NULL")
}

func (s *ScheduleService) scheduleWhere(cond string, args ...interface{}) ([]ScheduleItem, error) {
	var items []ScheduleItem
	err := s.db.Model(&models.ScheduleEntry{}).
		Select("schedule.subject_id, subjects.name AS subject_name, schedule.tutor_id, schedule.price").
		Joins("JOIN subjects ON subjects.subject_id = schedule.subject_id").
		Where(cond, args...).
		Order("subjects.name").
		Scan(&items).Error
	if err != nil {
		return nil, storageErr("get schedule", err)
	}
	return items, nil
}
