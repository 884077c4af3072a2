package services

import (
	"testing"
	"time"

	"github.com/dkotova/tutor_bot/models"
)

func TestLedgerCreateAndGetByID(t *testing.T) {
	db := setupDB(t)
	mathID, _ := seedSchedule(t, db)
	ledger := NewLedgerService(db, nil)

	username := "alice"
	req := &models.PaymentRequest{
		StudentID: 42,
		Username:  &username,
		FirstName: "Alice",
		SubjectID: mathID,
		TutorID:   "T1",
		Price:     500,
	}
	id, err := ledger.Create(req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Fatal("Create returned zero id")
	}

	got, found, err := ledger.GetByID(id)
	if err != nil || !found {
		t.Fatalf("GetByID(%d): found=%v err=%v", id, found, err)
	}
	if got.Status != models.StatusNew {
		t.Errorf("want status NEW, got %s", got.Status)
	}
	if got.StudentID != 42 || got.FirstName != "Alice" || got.Price != 500 || got.TutorID != "T1" {
		t.Errorf("fields changed on round trip: %+v", got)
	}
	if got.Username == nil || *got.Username != "alice" {
		t.Errorf("want username alice, got %v", got.Username)
	}
	if got.Subject.Name != "Math" {
		t.Errorf("want subject Math preloaded, got %q", got.Subject.Name)
	}
}

func TestLedgerGetByID_Unknown(t *testing.T) {
	db := setupDB(t)
	seedSchedule(t, db)
	ledger := NewLedgerService(db, nil)

	_, found, err := ledger.GetByID(12345)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found {
		t.Error("unknown payment id reported as found")
	}
}

func TestLedgerListOrdering(t *testing.T) {
	db := setupDB(t)
	mathID, englishID := seedSchedule(t, db)
	ledger := NewLedgerService(db, nil)

	older := &models.PaymentRequest{StudentID: 1, FirstName: "A", SubjectID: mathID, TutorID: "T1", Price: 500}
	newer := &models.PaymentRequest{StudentID: 2, FirstName: "B", SubjectID: englishID, TutorID: "T1", Price: 700}
	if _, err := ledger.Create(older); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ledger.Create(newer); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// created_at has second precision in sqlite text storage, force distinct order
	if err := db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate fixture: %v", err)
	}

	active, err := ledger.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("want 2 active, got %d", len(active))
	}
	if active[0].ID != older.ID {
		t.Errorf("ListActive: want oldest first, got id %d", active[0].ID)
	}

	all, err := ledger.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all[0].ID != newer.ID {
		t.Errorf("ListAll: want newest first, got id %d", all[0].ID)
	}
	if all[0].Subject.Name == "" {
		t.Error("ListAll: subject not joined in")
	}
}

func TestLedgerSetStatus(t *testing.T) {
	db := setupDB(t)
	mathID, _ := seedSchedule(t, db)
	ledger := NewLedgerService(db, nil)

	req := &models.PaymentRequest{StudentID: 42, FirstName: "Alice", SubjectID: mathID, TutorID: "T1", Price: 500}
	id, err := ledger.Create(req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	affected, err := ledger.SetStatus(id, models.StatusComplete)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if !affected {
		t.Error("SetStatus on existing row reported no rows affected")
	}

	active, err := ledger.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, r := range active {
		if r.ID == id {
			t.Error("COMPLETE request still listed as active")
		}
	}

	all, err := ledger.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	var seen bool
	for _, r := range all {
		if r.ID == id {
			seen = true
			if r.Status != models.StatusComplete {
				t.Errorf("want COMPLETE in full list, got %s", r.Status)
			}
		}
	}
	if !seen {
		t.Error("completed request missing from full list")
	}

	// Same status again: still exactly one row, still affected.
	affected, err = ledger.SetStatus(id, models.StatusComplete)
	if err != nil {
		t.Fatalf("SetStatus repeat: %v", err)
	}
	if !affected {
		t.Error("repeated SetStatus reported no rows affected")
	}
	var count int64
	if err := db.Model(&models.PaymentRequest{}).Where("status = ?", models.StatusComplete).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("want exactly 1 COMPLETE row, got %d", count)
	}

	affected, err = ledger.SetStatus(999999, models.StatusCancel)
	if err != nil {
		t.Fatalf("SetStatus unknown id: %v", err)
	}
	if affected {
		t.Error("SetStatus on unknown id reported a row affected")
	}
}
