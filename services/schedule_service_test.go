package services

import "testing"

func TestGetScheduleForStudent_DefaultFallback(t *testing.T) {
	db := setupDB(t)
	seedSchedule(t, db)
	svc := NewScheduleService(db)

	// No entries for student 42: the default set applies, in full.
	items, err := svc.GetScheduleForStudent(42)
	if err != nil {
		t.Fatalf("GetScheduleForStudent: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 default entries, got %d", len(items))
	}
	if items[0].SubjectName != "English" || items[1].SubjectName != "Math" {
		t.Errorf("want subject-name order [English Math], got [%s %s]", items[0].SubjectName, items[1].SubjectName)
	}
	if items[1].Price != 500 || items[1].TutorID != "T1" {
		t.Errorf("Math entry: want price 500 tutor T1, got price %d tutor %s", items[1].Price, items[1].TutorID)
	}
}

func TestGetScheduleForStudent_SpecificReplacesDefault(t *testing.T) {
	db := setupDB(t)
	mathID, _ := seedSchedule(t, db)
	svc := NewScheduleService(db)

	entry := scheduleFor(99, mathID, "T1", 900)
	mustCreate(t, db, &entry)

	// One student-specific entry fully replaces the default set, it is
	// never merged with it.
	items, err := svc.GetScheduleForStudent(99)
	if err != nil {
		t.Fatalf("GetScheduleForStudent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want exactly the 1 student-specific entry, got %d", len(items))
	}
	if items[0].SubjectName != "Math" || items[0].Price != 900 {
		t.Errorf("want Math at 900, got %s at %d", items[0].SubjectName, items[0].Price)
	}
}

func TestGetTutor_PlaceholderForUnknown(t *testing.T) {
	db := setupDB(t)
	seedSchedule(t, db)
	svc := NewScheduleService(db)

	tutor, err := svc.GetTutor("no-such-tutor")
	if err != nil {
		t.Fatalf("GetTutor: %v", err)
	}
	if tutor.Name != "unspecified" || tutor.TutorID != "tutor_default" {
		t.Errorf("want placeholder tutor, got %+v", tutor)
	}

	known, err := svc.GetTutor("T1")
	if err != nil {
		t.Fatalf("GetTutor: %v", err)
	}
	if known.Name != "Anna" {
		t.Errorf("want Anna, got %s", known.Name)
	}
}

func TestGetSubject(t *testing.T) {
	db := setupDB(t)
	mathID, _ := seedSchedule(t, db)
	svc := NewScheduleService(db)

	subject, found, err := svc.GetSubject(mathID)
	if err != nil || !found {
		t.Fatalf("GetSubject(%d): found=%v err=%v", mathID, found, err)
	}
	if subject.Name != "Math" {
		t.Errorf("want Math, got %s", subject.Name)
	}

	_, found, err = svc.GetSubject(9999)
	if err != nil {
		t.Fatalf("GetSubject(9999): %v", err)
	}
	if found {
		t.Error("unknown subject id reported as found")
	}
}
