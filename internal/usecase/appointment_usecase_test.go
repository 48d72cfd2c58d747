package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/service"
	"mindcare-backend/pkg/apperror"
)

func TestBookAppointment_CreatesPendingWithDefaults(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})

	appt := f.book(t, "2025-06-01", "10:00")

	if appt.Status != string(entity.AppointmentStatusPending) {
		t.Errorf("status = %q, want pending", appt.Status)
	}
	if appt.Duration != entity.DefaultAppointmentDuration {
		t.Errorf("duration = %d, want %d", appt.Duration, entity.DefaultAppointmentDuration)
	}
	if appt.PatientName != "Jane Roe" || appt.DoctorName != "Dr. Smith" {
		t.Errorf("name snapshot = %q/%q", appt.PatientName, appt.DoctorName)
	}
	if got := f.audit.Actions(); len(got) != 1 || got[0] != entity.AuditActionAppointmentBook {
		t.Errorf("audit = %v, want [%s]", got, entity.AuditActionAppointmentBook)
	}
}

func TestBookAppointment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.BookAppointmentRequest)
	}{
		{"missing patient name", func(r *dto.BookAppointmentRequest) { r.PatientName = " " }},
		{"missing doctor", func(r *dto.BookAppointmentRequest) { r.DoctorID = "" }},
		{"bad date", func(r *dto.BookAppointmentRequest) { r.Date = "06/01/2025" }},
		{"bad time", func(r *dto.BookAppointmentRequest) { r.Time = "ten o'clock" }},
		{"unknown type", func(r *dto.BookAppointmentRequest) { r.Type = "Surgery" }},
		{"negative duration", func(r *dto.BookAppointmentRequest) { r.Duration = -30 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
			req := bookingRequest("2025-06-01", "10:00")
			tt.mutate(req)

			_, err := f.usecase.BookAppointment(context.Background(), patientActor, req)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Fatalf("err = %v, want validation", err)
			}
			if all, _ := f.appointments.FindAll(context.Background(), entity.AppointmentFilter{}); len(all) != 0 {
				t.Errorf("appointments = %d, want none", len(all))
			}
		})
	}
}

func TestBookAppointment_Authorization(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()

	if _, err := f.usecase.BookAppointment(ctx, otherPatient, bookingRequest("2025-06-01", "10:00")); !errors.Is(err, ErrBookForOtherPatient) {
		t.Errorf("other patient err = %v, want %v", err, ErrBookForOtherPatient)
	}
	if _, err := f.usecase.BookAppointment(ctx, otherDoctorActor, bookingRequest("2025-06-01", "10:00")); !errors.Is(err, ErrBookForOtherDoctor) {
		t.Errorf("other doctor err = %v, want %v", err, ErrBookForOtherDoctor)
	}

	req := bookingRequest("2025-06-01", "10:00")
	req.DoctorID = "doc-404"
	if _, err := f.usecase.BookAppointment(ctx, patientActor, req); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown doctor err = %v, want %v", err, ErrDoctorNotFound)
	}
}

func TestBookAppointment_DoctorScheduledAlertsPatient(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})

	if _, err := f.usecase.BookAppointment(context.Background(), doctorActor, bookingRequest("2025-06-01", "2:00 PM")); err != nil {
		t.Fatal(err)
	}

	if n := len(f.alerts.Unread(entity.AlertRecipientDoctor)); n != 0 {
		t.Errorf("doctor alerts = %d, want 0", n)
	}
	got := f.alerts.Unread(entity.AlertRecipientPatient)
	if len(got) != 1 || got[0].Message != "New appointment scheduled on 2025-06-01 at 2:00 PM" {
		t.Errorf("patient alerts = %+v", got)
	}
}

func TestBookAppointment_AlertFailureDoesNotBlock(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	f.alerts.Err = errors.New("alerts table unavailable")

	appt := f.book(t, "2025-06-01", "10:00")

	if f.appointments.Get(appt.ID) == nil {
		t.Fatal("appointment should be stored even though the alert failed")
	}
}

func TestBookAppointment_StoreFailure(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	f.appointments.Err = apperror.Store("create appointment", errors.New("connection refused"))

	_, err := f.usecase.BookAppointment(context.Background(), patientActor, bookingRequest("2025-06-01", "10:00"))
	if apperror.KindOf(err) != apperror.KindStore {
		t.Fatalf("err = %v, want store", err)
	}
	if n := len(f.alerts.Unread(entity.AlertRecipientDoctor)); n != 0 {
		t.Errorf("alerts = %d, want none for a failed booking", n)
	}
}

func TestBookAppointment_UniqueSlot(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{UniqueSlot: true})
	ctx := context.Background()
	f.book(t, "2025-06-01", "10:00")

	// same hour in 12-hour form is the same slot
	_, err := f.usecase.BookAppointment(ctx, patientActor, bookingRequest("2025-06-01", "10:00 AM"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("err = %v, want %v", err, ErrSlotTaken)
	}

	if _, err := f.usecase.BookAppointment(ctx, patientActor, bookingRequest("2025-06-01", "11:00")); err != nil {
		t.Errorf("next hour should be free: %v", err)
	}
}

func TestBookAppointment_UniqueSlotIgnoresCancelled(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{UniqueSlot: true})
	appt := f.book(t, "2025-06-01", "10:00")

	if _, err := f.usecase.CancelByPatient(context.Background(), appt.ID, "pat-1", ""); err != nil {
		t.Fatal(err)
	}
	f.book(t, "2025-06-01", "10:00")
}

func TestBookAppointment_DoubleBookingAllowedWithoutUniqueSlot(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{UniqueSlot: false})
	f.book(t, "2025-06-01", "10:00")
	f.book(t, "2025-06-01", "10:00")
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string, string, int) (func(), error) {
	return nil, service.ErrSlotBusy
}

func TestBookAppointment_LockHeldElsewhere(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{UniqueSlot: true})
	f.usecase.slotLocker = busyLocker{}

	_, err := f.usecase.BookAppointment(context.Background(), patientActor, bookingRequest("2025-06-01", "10:00"))
	if apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestConfirm_OnlyAppointmentDoctor(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")

	for _, actor := range []entity.Actor{otherDoctorActor, patientActor, adminActor} {
		if _, err := f.usecase.Confirm(context.Background(), appt.ID, actor); !errors.Is(err, ErrNotAppointmentDoctor) {
			t.Errorf("%s confirm err = %v, want forbidden", actor.UserID, err)
		}
	}

	var forbidden int
	for _, action := range f.audit.Actions() {
		if action == entity.AuditActionForbidden {
			forbidden++
		}
	}
	if forbidden != 3 {
		t.Errorf("forbidden audit entries = %d, want 3", forbidden)
	}
	if got := f.appointments.Get(appt.ID).Status; got != entity.AppointmentStatusPending {
		t.Errorf("status = %s, want pending", got)
	}
}

func TestConfirm_TwiceIsInvalidStateWithoutSecondAlert(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	if _, err := f.usecase.Confirm(ctx, appt.ID, doctorActor); err != nil {
		t.Fatal(err)
	}
	_, err := f.usecase.Confirm(ctx, appt.ID, doctorActor)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperror.KindInvalidState {
		t.Fatalf("err = %v, want invalid state", err)
	}
	if appErr.Details["current_status"] != "confirmed" {
		t.Errorf("current_status = %v, want confirmed", appErr.Details["current_status"])
	}
	if n := len(f.alerts.Unread(entity.AlertRecipientPatient)); n != 1 {
		t.Errorf("patient alerts = %d, want 1", n)
	}
}

func TestDecline_CancelsAsDoctor(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")

	got, err := f.usecase.Decline(context.Background(), appt.ID, doctorActor)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "cancelled" || got.CancelledBy == nil || *got.CancelledBy != "doctor" {
		t.Errorf("declined = %+v", got)
	}

	stored := f.appointments.Get(appt.ID)
	if stored.CancelledBy == nil || *stored.CancelledBy != entity.CancelledByDoctor {
		t.Errorf("stored cancelled_by = %v", stored.CancelledBy)
	}
	alerts := f.alerts.Unread(entity.AlertRecipientPatient)
	if len(alerts) != 1 || alerts[0].Priority != entity.AlertPriorityHigh {
		t.Errorf("patient alerts = %+v", alerts)
	}
}

func TestDecline_ConfirmedIsInvalidState(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	if _, err := f.usecase.Confirm(ctx, appt.ID, doctorActor); err != nil {
		t.Fatal(err)
	}
	if _, err := f.usecase.Decline(ctx, appt.ID, doctorActor); apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("err = %v, want invalid state", err)
	}
}

func TestCancelByPatient_Order(t *testing.T) {
	f := newAppointmentFixture(t, "2025-06-01 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	if _, err := f.usecase.CancelByPatient(ctx, "missing", "pat-1", ""); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("missing err = %v, want not found", err)
	}
	// ownership is checked before the (failing) window check
	if _, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-2", ""); !errors.Is(err, ErrNotAppointmentPatient) {
		t.Errorf("other patient err = %v, want forbidden", err)
	}
	if _, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-1", ""); apperror.KindOf(err) != apperror.KindTooLate {
		t.Errorf("late err = %v, want too late", err)
	}
}

func TestCancelByPatient_TerminalStatesAreInvalid(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()

	completed := f.book(t, "2025-06-01", "10:00")
	if _, err := f.usecase.Confirm(ctx, completed.ID, doctorActor); err != nil {
		t.Fatal(err)
	}
	if _, err := f.usecase.MarkComplete(ctx, completed.ID, doctorActor); err != nil {
		t.Fatal(err)
	}

	cancelled := f.book(t, "2025-06-02", "10:00")
	if _, err := f.usecase.CancelByPatient(ctx, cancelled.ID, "pat-1", "moving"); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{completed.ID, cancelled.ID} {
		if _, err := f.usecase.CancelByPatient(ctx, id, "pat-1", ""); apperror.KindOf(err) != apperror.KindInvalidState {
			t.Errorf("cancel %s err = %v, want invalid state", id, err)
		}
	}
}

func TestCancelByPatient_WindowBoundary(t *testing.T) {
	tests := []struct {
		now     string
		wantErr bool
	}{
		{"2025-05-30 09:00", false},
		{"2025-05-31 10:00", false}, // exactly 24h is allowed
		{"2025-05-31 10:01", true},
		{"2025-06-01 09:00", true},
		{"2025-06-02 09:00", true}, // already in the past
	}

	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
			appt := f.book(t, "2025-06-01", "10:00")
			f.setNow(t, tt.now)

			_, err := f.usecase.CancelByPatient(context.Background(), appt.ID, "pat-1", "")
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && apperror.KindOf(err) != apperror.KindTooLate {
				t.Errorf("kind = %q, want too_late", apperror.KindOf(err))
			}
		})
	}
}

func TestCancelByPatient_TooLateCarriesPolicy(t *testing.T) {
	f := newAppointmentFixture(t, "2025-06-01 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")

	_, err := f.usecase.CancelByPatient(context.Background(), appt.ID, "pat-1", "")

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want *apperror.Error", err)
	}
	if appErr.Details["policy"] != CancellationPolicyText || appErr.Details["warning"] != CancellationWarningText {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestCancelByPatient_UsesClinicTimezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	// 10:00 in Berlin (CEST) is 08:00 UTC
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{Location: berlin})
	appt := f.book(t, "2025-06-01", "10:00")

	f.setNow(t, "2025-05-31 08:30")
	if _, err := f.usecase.CancelByPatient(context.Background(), appt.ID, "pat-1", ""); apperror.KindOf(err) != apperror.KindTooLate {
		t.Errorf("err = %v, want too late (23.5h left in Berlin time)", err)
	}

	f.setNow(t, "2025-05-31 08:00")
	if _, err := f.usecase.CancelByPatient(context.Background(), appt.ID, "pat-1", ""); err != nil {
		t.Errorf("exactly 24h before in Berlin time should succeed: %v", err)
	}
}

func TestCancelByPatient_RecordsReasonAndAlertsDoctor(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	got, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-1", "  ")
	if err != nil {
		t.Fatal(err)
	}

	stored := f.appointments.Get(appt.ID)
	if stored.Status != entity.AppointmentStatusCancelled {
		t.Errorf("status = %s", stored.Status)
	}
	if stored.CancellationReason == nil || *stored.CancellationReason != DefaultCancelReason {
		t.Errorf("reason = %v, want default", stored.CancellationReason)
	}
	if stored.CancelledAt == nil || !stored.CancelledAt.Equal(mustTime(t, "2025-05-20 09:00")) {
		t.Errorf("cancelled_at = %v", stored.CancelledAt)
	}
	if got.CancelledBy == nil || *got.CancelledBy != "patient" {
		t.Errorf("cancelled_by = %v", got.CancelledBy)
	}

	doctorAlerts := f.alerts.Unread(entity.AlertRecipientDoctor)
	if len(doctorAlerts) != 1 || doctorAlerts[0].Message != "Jane Roe cancelled the appointment on 2025-06-01 at 10:00" {
		t.Errorf("doctor alerts = %+v", doctorAlerts)
	}
}

func TestMarkComplete_RequiresConfirmed(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	if _, err := f.usecase.MarkComplete(ctx, appt.ID, doctorActor); apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("pending complete err = %v, want invalid state", err)
	}
	if _, err := f.usecase.Confirm(ctx, appt.ID, doctorActor); err != nil {
		t.Fatal(err)
	}
	if _, err := f.usecase.MarkComplete(ctx, appt.ID, patientActor); !errors.Is(err, ErrNotAppointmentDoctor) {
		t.Errorf("patient complete err = %v, want forbidden", err)
	}
	if _, err := f.usecase.MarkComplete(ctx, appt.ID, adminActor); err != nil {
		t.Errorf("admin complete: %v", err)
	}
	if _, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-1", ""); apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("cancel completed err = %v, want invalid state", err)
	}
}

func TestUpdateStatus_Dispatch(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()
	appt := f.book(t, "2025-06-01", "10:00")

	if _, err := f.usecase.UpdateStatus(ctx, appt.ID, "rescheduled", doctorActor); !errors.Is(err, ErrInvalidStatusUpdate) {
		t.Errorf("unknown status err = %v, want validation", err)
	}
	if _, err := f.usecase.UpdateStatus(ctx, appt.ID, "pending", doctorActor); apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("pending err = %v, want validation", err)
	}

	steps := []string{"confirmed", "completed"}
	for _, status := range steps {
		got, err := f.usecase.UpdateStatus(ctx, appt.ID, status, doctorActor)
		if err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
		if got.Status != status {
			t.Errorf("status = %s, want %s", got.Status, status)
		}
	}

	declined := f.book(t, "2025-06-02", "10:00")
	got, err := f.usecase.UpdateStatus(ctx, declined.ID, "cancelled", doctorActor)
	if err != nil || got.Status != "cancelled" {
		t.Errorf("decline via update = %+v, %v", got, err)
	}
}

// Status values observed across any sequence of operations stay on the lifecycle graph.
func TestLifecycle_NoTransitionLeavesTerminalState(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()

	ops := map[string]func(id string) error{
		"confirm":  func(id string) error { _, err := f.usecase.Confirm(ctx, id, doctorActor); return err },
		"decline":  func(id string) error { _, err := f.usecase.Decline(ctx, id, doctorActor); return err },
		"cancel":   func(id string) error { _, err := f.usecase.CancelByPatient(ctx, id, "pat-1", ""); return err },
		"complete": func(id string) error { _, err := f.usecase.MarkComplete(ctx, id, doctorActor); return err },
	}

	sequences := [][]string{
		{"decline", "confirm", "complete", "cancel"},
		{"cancel", "confirm", "decline", "complete"},
		{"confirm", "complete", "cancel", "decline", "confirm"},
		{"confirm", "cancel", "complete", "confirm"},
	}

	for i, seq := range sequences {
		appt := f.book(t, fmt.Sprintf("2025-07-%02d", i+1), "10:00")
		var terminal entity.AppointmentStatus
		for _, op := range seq {
			before := f.appointments.Get(appt.ID).Status
			err := ops[op](appt.ID)
			after := f.appointments.Get(appt.ID).Status

			if terminal != "" && after != terminal {
				t.Fatalf("seq %v: %s moved terminal %s to %s", seq, op, terminal, after)
			}
			if err == nil && before == after {
				t.Errorf("seq %v: %s succeeded without changing %s", seq, op, before)
			}
			if after == entity.AppointmentStatusCompleted || after == entity.AppointmentStatusCancelled {
				terminal = after
			}
		}
	}
}

func TestGetAndListAppointments_ScopedToCaller(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()
	appt := f.book(t, "2025-06-01", "10:00")

	if _, err := f.usecase.GetAppointment(ctx, appt.ID, otherPatient); !errors.Is(err, ErrAppointmentAccess) {
		t.Errorf("other patient get err = %v", err)
	}
	if _, err := f.usecase.GetAppointment(ctx, appt.ID, otherDoctorActor); !errors.Is(err, ErrAppointmentAccess) {
		t.Errorf("other doctor get err = %v", err)
	}
	if _, err := f.usecase.GetAppointment(ctx, appt.ID, doctorActor); err != nil {
		t.Errorf("doctor get: %v", err)
	}

	mine, err := f.usecase.ListAppointments(ctx, patientActor, entity.AppointmentFilter{})
	if err != nil || mine.Total != 1 {
		t.Errorf("patient list = %+v, %v", mine, err)
	}
	theirs, err := f.usecase.ListAppointments(ctx, otherPatient, entity.AppointmentFilter{})
	if err != nil || theirs.Total != 0 {
		t.Errorf("other patient list = %+v, %v", theirs, err)
	}
	if _, err := f.usecase.ListAppointments(ctx, otherDoctorActor, entity.AppointmentFilter{DoctorID: "doc-1"}); !errors.Is(err, ErrAppointmentAccess) {
		t.Errorf("other doctor list err = %v", err)
	}
	byDate, err := f.usecase.ListAppointments(ctx, doctorActor, entity.AppointmentFilter{Date: "2025-06-01T00:00:00Z"})
	if err != nil || byDate.Total != 1 {
		t.Errorf("doctor list by date = %+v, %v", byDate, err)
	}
}

func TestDeleteAppointment_AdminOnly(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	ctx := context.Background()
	appt := f.book(t, "2025-06-01", "10:00")

	if err := f.usecase.DeleteAppointment(ctx, appt.ID, doctorActor); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("doctor delete err = %v", err)
	}
	if err := f.usecase.DeleteAppointment(ctx, appt.ID, adminActor); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := f.usecase.DeleteAppointment(ctx, appt.ID, adminActor); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

// Booking creates exactly one unread doctor alert; confirming clears it and creates one unread patient alert.
func TestScenarioC_AlertPropagation(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")

	doctorAlerts := f.alerts.Unread(entity.AlertRecipientDoctor)
	if len(doctorAlerts) != 1 || doctorAlerts[0].Message != "New appointment request from Jane Roe" {
		t.Fatalf("after booking doctor alerts = %+v", doctorAlerts)
	}

	if _, err := f.usecase.Confirm(context.Background(), appt.ID, doctorActor); err != nil {
		t.Fatal(err)
	}

	if n := len(f.alerts.Unread(entity.AlertRecipientDoctor)); n != 0 {
		t.Errorf("after confirm unread doctor alerts = %d, want 0", n)
	}
	patientAlerts := f.alerts.Unread(entity.AlertRecipientPatient)
	if len(patientAlerts) != 1 {
		t.Fatalf("patient alerts = %d, want 1", len(patientAlerts))
	}
	if want := "Your appointment on 2025-06-01 at 10:00 has been confirmed"; patientAlerts[0].Message != want {
		t.Errorf("message = %q, want %q", patientAlerts[0].Message, want)
	}
}

// A patient cancelling too close to the visit is refused; two days out it succeeds.
func TestScenarioB_CancellationWindow(t *testing.T) {
	f := newAppointmentFixture(t, "2025-05-20 09:00", BookingPolicy{})
	appt := f.book(t, "2025-06-01", "10:00")
	ctx := context.Background()

	f.setNow(t, "2025-06-01 09:00")
	if _, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-1", ""); !errors.Is(err, ErrCancellationTooLate) {
		t.Fatalf("err = %v, want too late", err)
	}

	f.setNow(t, "2025-05-30 09:00")
	got, err := f.usecase.CancelByPatient(ctx, appt.ID, "pat-1", "feeling better")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "cancelled" || *got.CancelledBy != "patient" || *got.CancellationReason != "feeling better" {
		t.Errorf("cancelled = %+v", got)
	}
}
