package usecase

import (
	"context"
	"errors"
	"testing"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository/repotest"
	"mindcare-backend/internal/service"
)

func newAlertUsecase(alerts *repotest.AlertRepo) AlertUsecase {
	log := quietLogger()
	return NewAlertUsecase(log, alerts, seedDoctors(), service.NewAuditService(log, repotest.NewAuditLogRepo()))
}

func doctorAlert(patientID string, appointmentID *string) *entity.Alert {
	return &entity.Alert{
		DoctorID:      "doc-1",
		PatientID:     patientID,
		AppointmentID: appointmentID,
		Recipient:     entity.AlertRecipientDoctor,
		Type:          entity.AlertTypeAppointment,
		Message:       "New appointment request from " + patientID,
		Priority:      entity.AlertPriorityMedium,
	}
}

func strPtr(s string) *string { return &s }

func TestMarkRead_NarrowsByAppointment(t *testing.T) {
	alerts := repotest.NewAlertRepo()
	alerts.Alerts = []*entity.Alert{
		doctorAlert("pat-1", strPtr("appt-a")),
		doctorAlert("pat-1", strPtr("appt-b")),
		doctorAlert("pat-1", nil),
		doctorAlert("pat-2", strPtr("appt-c")),
	}
	uc := newAlertUsecase(alerts)

	got, err := uc.MarkRead(context.Background(), doctorActor, &dto.MarkAlertsReadRequest{
		DoctorID:      "doc-1",
		PatientID:     "pat-1",
		AppointmentID: "appt-a",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Updated != 2 {
		t.Errorf("updated = %d, want 2 (appt-a and the legacy alert)", got.Updated)
	}

	unread := alerts.Unread(entity.AlertRecipientDoctor)
	if len(unread) != 2 {
		t.Fatalf("unread = %d, want 2", len(unread))
	}
	for _, a := range unread {
		if a.AppointmentID == nil || (*a.AppointmentID != "appt-b" && *a.AppointmentID != "appt-c") {
			t.Errorf("unexpected unread alert %+v", a)
		}
	}
}

func TestMarkRead_PatientWide(t *testing.T) {
	alerts := repotest.NewAlertRepo()
	alerts.Alerts = []*entity.Alert{
		doctorAlert("pat-1", strPtr("appt-a")),
		doctorAlert("pat-1", strPtr("appt-b")),
		doctorAlert("pat-2", nil),
	}
	uc := newAlertUsecase(alerts)

	got, err := uc.MarkRead(context.Background(), doctorActor, &dto.MarkAlertsReadRequest{DoctorID: "doc-1", PatientID: "pat-1"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Updated != 2 {
		t.Errorf("updated = %d, want 2", got.Updated)
	}

	again, err := uc.MarkRead(context.Background(), doctorActor, &dto.MarkAlertsReadRequest{DoctorID: "doc-1", PatientID: "pat-1"})
	if err != nil || again.Updated != 0 {
		t.Errorf("second mark = %+v, %v; want 0 updated", again, err)
	}
}

func TestMarkRead_Access(t *testing.T) {
	uc := newAlertUsecase(repotest.NewAlertRepo())
	ctx := context.Background()

	if _, err := uc.MarkRead(ctx, doctorActor, &dto.MarkAlertsReadRequest{}); !errors.Is(err, ErrDoctorIDRequired) {
		t.Errorf("missing doctor err = %v", err)
	}
	if _, err := uc.MarkRead(ctx, otherDoctorActor, &dto.MarkAlertsReadRequest{DoctorID: "doc-1"}); !errors.Is(err, ErrAlertAccess) {
		t.Errorf("other doctor err = %v", err)
	}
	if _, err := uc.MarkRead(ctx, patientActor, &dto.MarkAlertsReadRequest{DoctorID: "doc-1"}); !errors.Is(err, ErrAlertAccess) {
		t.Errorf("patient err = %v", err)
	}
	if _, err := uc.MarkRead(ctx, adminActor, &dto.MarkAlertsReadRequest{DoctorID: "doc-1"}); err != nil {
		t.Errorf("admin: %v", err)
	}
}

func TestListAlerts_ScopedToRecipient(t *testing.T) {
	patientAlert := doctorAlert("pat-1", strPtr("appt-a"))
	patientAlert.Recipient = entity.AlertRecipientPatient
	read := doctorAlert("pat-1", nil)
	read.IsRead = true

	alerts := repotest.NewAlertRepo()
	alerts.Alerts = []*entity.Alert{doctorAlert("pat-1", strPtr("appt-a")), read, patientAlert}
	uc := newAlertUsecase(alerts)
	ctx := context.Background()

	doctorView, err := uc.ListAlerts(ctx, doctorActor, entity.AlertFilter{DoctorID: "doc-1"})
	if err != nil {
		t.Fatal(err)
	}
	if doctorView.Total != 2 || doctorView.Unread != 1 {
		t.Errorf("doctor view total=%d unread=%d, want 2/1", doctorView.Total, doctorView.Unread)
	}

	patientView, err := uc.ListAlerts(ctx, patientActor, entity.AlertFilter{PatientID: "pat-1"})
	if err != nil {
		t.Fatal(err)
	}
	if patientView.Total != 1 || patientView.Alerts[0].Recipient != "patient" {
		t.Errorf("patient view = %+v", patientView)
	}

	if _, err := uc.ListAlerts(ctx, otherPatient, entity.AlertFilter{PatientID: "pat-1"}); !errors.Is(err, ErrAlertAccess) {
		t.Errorf("other patient err = %v", err)
	}
	if _, err := uc.ListAlerts(ctx, doctorActor, entity.AlertFilter{}); !errors.Is(err, ErrAlertOwnerRequired) {
		t.Errorf("no owner err = %v", err)
	}
}
