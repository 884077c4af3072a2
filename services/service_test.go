package services

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkotova/tutor_bot/database"
	"github.com/dkotova/tutor_bot/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A file-backed database: with ":memory:" every pooled connection
	// gets its own empty database.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create fixture %T: %v", value, err)
	}
}

// seedSchedule inserts tutor T1, subjects Math and English, and a default
// schedule with both. Returns the Math subject id.
func seedSchedule(t *testing.T, db *gorm.DB) (mathID, englishID uint) {
	t.Helper()

	mustCreate(t, db, &models.Tutor{TutorID: "T1", Name: "Anna", Phone: "123", Bank: "FirstBank"})
	math := models.Subject{Name: "Math"}
	english := models.Subject{Name: "English"}
	mustCreate(t, db, &math)
	mustCreate(t, db, &english)
	mustCreate(t, db, &models.ScheduleEntry{SubjectID: math.SubjectID, TutorID: "T1", Price: 500})
	mustCreate(t, db, &models.ScheduleEntry{SubjectID: english.SubjectID, TutorID: "T1", Price: 700})
	return math.SubjectID, english.SubjectID
}

func int64p(v int64) *int64 { return &v }

func scheduleFor(studentID int64, subjectID uint, tutorID string, price int) models.ScheduleEntry {
	return models.ScheduleEntry{StudentID: int64p(studentID), SubjectID: subjectID, TutorID: tutorID, Price: price}
}

func addSubject(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	subject := models.Subject{Name: name}
	mustCreate(t, db, &subject)
	return subject.SubjectID
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
