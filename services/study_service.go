package services

import (
	"fmt"

	"github.com/dkotova/tutor_bot/models"
)

// StudyService turns a student's schedule into selectable options and
// records confirmed selections in the ledger.
type StudyService struct {
	schedule *ScheduleService
	ledger   *LedgerService
}

func NewStudyService(schedule *ScheduleService, ledger *LedgerService) *StudyService {
	return &StudyService{schedule: schedule, ledger: ledger}
}

// StudyOption is one selectable subject button.
type StudyOption struct {
	Label        string
	CallbackData string
}

// StudentIdentity carries the chat identity attached to a new payment request.
type StudentIdentity struct {
	ID        int64
	Username  *string
	FirstName string
}

func (s *StudyService) ListSubjectsForStudent(studentID int64) (string, []StudyOption, error) {
	schedule, err := s.schedule.GetScheduleForStudent(studentID)
	if err != nil {
		return "", nil, err
	}

	options := make([]StudyOption, 0, len(schedule))
	for _, item := range schedule {
		tutor, err := s.schedule.GetTutor(item.TutorID)
		if err != nil {
			return "", nil, err
		}
		options = append(options, StudyOption{
			Label:        fmt.Sprintf("%s (%s)", item.SubjectName, tutor.Name),
			CallbackData: fmt.Sprintf("subject_%d", item.SubjectID),
		})
	}
	return "pick a subject from the list", options, nil
}

// ConfirmSelection resolves the effective tutor and price for the subject
// and appends a NEW payment request. The subject is looked up in the
// student's resolved schedule first and the default schedule second;
// missing from both means ErrNotFound.
func (s *StudyService) ConfirmSelection(studentID int64, subjectID uint, identity StudentIdentity) (*models.PaymentRequest, error) {
	_, found, err := s.schedule.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	items, err := s.schedule.GetScheduleForStudent(studentID)
	if err != nil {
		return nil, err
	}
	item := findSubject(items, subjectID)
	if item == nil {
		defaults, err := s.schedule.GetDefaultSchedule()
		if err != nil {
			return nil, err
		}
		item = findSubject(defaults, subjectID)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	tutor, err := s.schedule.GetTutor(item.TutorID)
	if err != nil {
		return nil, err
	}

	req := &models.PaymentRequest{
		StudentID: identity.ID,
		Username:  identity.Username,
		FirstName: identity.FirstName,
		SubjectID: subjectID,
		TutorID:   tutor.TutorID,
		Price:     item.Price,
	}
	if _, err := s.ledger.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func findSubject(items []ScheduleItem, subjectID uint) *ScheduleItem {
	for i := range items {
		if items[i].SubjectID == subjectID {
			return &items[i]
		}
	}
	return nil
}
