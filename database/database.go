package database

import (
	"fmt"
	"log"

	"github.com/dkotova/tutor_bot/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tutor{},
		&models.Subject{},
		&models.ScheduleEntry{},
		&models.PaymentRequest{},
	)
}

// Seed inserts the placeholder tutor, subject and default schedule entry
// on first start so the bot has something to offer before an operator
// fills in real data.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tutor{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		tutor := models.Tutor{TutorID: "tutor_0", Name: "Tutor", Phone: "0 (000) 000-00-00", Bank: "Bank"}
		if err := db.Create(&tutor).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded placeholder tutor")
	}

	if err := db.Model(&models.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&models.Subject{Name: "Subject"}).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded placeholder subject")
	}

	if err := db.Model(&models.ScheduleEntry{}).Where("student_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		var subject models.Subject
		if err := db.Where("name = ?", "Subject").First(&subject).Error; err != nil {
			return err
		}
		entry := models.ScheduleEntry{SubjectID: subject.SubjectID, TutorID: "tutor_0", Price: 0}
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
		log.Println("✅ Seeded default schedule entry")
	}

	return nil
}
