package usecase

import (
	"context"
	"errors"
	"testing"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository/repotest"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"
)

func newMoodUsecase(moods *repotest.MoodEntryRepo) MoodUsecase {
	log := quietLogger()
	return NewMoodUsecase(log, moods, seedDoctors(), repotest.NewAppointmentRepo(), service.NewAuditService(log, repotest.NewAuditLogRepo()))
}

func TestCreateMoodEntry(t *testing.T) {
	moods := repotest.NewMoodEntryRepo()
	uc := newMoodUsecase(moods)
	ctx := context.Background()

	got, err := uc.CreateMoodEntry(ctx, patientActor, &dto.CreateMoodEntryRequest{Date: "2025-03-01T08:00:00Z", Value: 7, Factors: []string{"sleep"}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != "2025-03-01" || got.PatientID != "pat-1" {
		t.Errorf("entry = %+v", got)
	}

	for _, v := range []int{0, 11} {
		if _, err := uc.CreateMoodEntry(ctx, patientActor, &dto.CreateMoodEntryRequest{Date: "2025-03-01", Value: v}); !errors.Is(err, ErrMoodValueOutOfRange) {
			t.Errorf("value %d err = %v", v, err)
		}
	}
	if _, err := uc.CreateMoodEntry(ctx, patientActor, &dto.CreateMoodEntryRequest{Date: "yesterday", Value: 5}); apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("bad date err = %v", err)
	}
	if _, err := uc.CreateMoodEntry(ctx, doctorActor, &dto.CreateMoodEntryRequest{Date: "2025-03-01", Value: 5}); !errors.Is(err, ErrMoodPatientOnly) {
		t.Errorf("doctor err = %v", err)
	}
	if len(moods.Entries) != 1 {
		t.Errorf("stored = %d, want 1", len(moods.Entries))
	}
}

func TestListMoodEntries_Bounds(t *testing.T) {
	moods := repotest.NewMoodEntryRepo(
		entity.MoodEntry{PatientID: "pat-1", Date: "2025-03-01", Value: 5},
		entity.MoodEntry{PatientID: "pat-1", Date: "2025-03-05", Value: 6},
		entity.MoodEntry{PatientID: "pat-1", Date: "2025-03-09", Value: 7},
		entity.MoodEntry{PatientID: "pat-2", Date: "2025-03-05", Value: 1},
	)
	uc := newMoodUsecase(moods)
	ctx := context.Background()

	tests := []struct {
		start, end string
		want       int
	}{
		{"", "", 3},
		{"2025-03-05", "", 2},
		{"", "2025-03-05", 2},
		{"2025-03-02", "2025-03-08", 1},
	}
	for _, tt := range tests {
		got, err := uc.ListMoodEntries(ctx, patientActor, "pat-1", tt.start, tt.end)
		if err != nil {
			t.Fatal(err)
		}
		if got.Total != tt.want {
			t.Errorf("[%s, %s] total = %d, want %d", tt.start, tt.end, got.Total, tt.want)
		}
	}

	all, _ := uc.ListMoodEntries(ctx, patientActor, "pat-1", "", "")
	if all.Entries[0].Date != "2025-03-09" {
		t.Errorf("first = %s, want newest", all.Entries[0].Date)
	}
	if _, err := uc.ListMoodEntries(ctx, otherPatient, "pat-1", "", ""); !errors.Is(err, ErrPatientAccess) {
		t.Errorf("other patient err = %v", err)
	}
}
