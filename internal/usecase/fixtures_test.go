package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"
	"mindcare-backend/internal/domain/repository/repotest"
	"mindcare-backend/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	doctorActor      = entity.Actor{UserID: "user-doc-1", UserType: entity.UserTypeDoctor, Name: "Dr. Smith"}
	otherDoctorActor = entity.Actor{UserID: "user-doc-2", UserType: entity.UserTypeDoctor, Name: "Dr. Jones"}
	patientActor     = entity.Actor{UserID: "pat-1", UserType: entity.UserTypePatient, Name: "Jane Roe"}
	otherPatient     = entity.Actor{UserID: "pat-2", UserType: entity.UserTypePatient, Name: "John Doe"}
	adminActor       = entity.Actor{UserID: "admin-1", UserType: entity.UserTypeAdmin}
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedDoctors() *repotest.DoctorRepo {
	return repotest.NewDoctorRepo(
		entity.Doctor{ID: "doc-1", UserID: "user-doc-1", Name: "Dr. Smith", Specialization: "Anxiety"},
		entity.Doctor{ID: "doc-2", UserID: "user-doc-2", Name: "Dr. Jones", Specialization: "Depression"},
	)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	at, err := time.ParseInLocation("2006-01-02 15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", value, err)
	}
	return at
}

type appointmentFixture struct {
	usecase      *appointmentUsecase
	appointments *repotest.AppointmentRepo
	alerts       *repotest.AlertRepo
	doctors      *repotest.DoctorRepo
	audit        *repotest.AuditLogRepo
	clock        *time.Time
}

func newAppointmentFixture(t *testing.T, now string, policy BookingPolicy) *appointmentFixture {
	t.Helper()

	log := quietLogger()
	f := &appointmentFixture{
		appointments: repotest.NewAppointmentRepo(),
		alerts:       repotest.NewAlertRepo(),
		doctors:      seedDoctors(),
		audit:        repotest.NewAuditLogRepo(),
	}
	at := mustTime(t, now)
	f.clock = &at

	uc := NewAppointmentUsecase(
		log,
		f.appointments,
		f.doctors,
		service.NewNotificationService(log, f.alerts),
		service.NewAuditService(log, f.audit),
		nil,
		policy,
	).(*appointmentUsecase)
	uc.now = func() time.Time { return *f.clock }
	f.usecase = uc
	return f
}

func (f *appointmentFixture) setNow(t *testing.T, value string) {
	*f.clock = mustTime(t, value)
}

func bookingRequest(date, clock string) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:    "doc-1",
		PatientID:   "pat-1",
		PatientName: "Jane Roe",
		DoctorName:  "Dr. Smith",
		Date:        date,
		Time:        clock,
		Type:        string(entity.AppointmentTypeInitialConsultation),
	}
}

func (f *appointmentFixture) book(t *testing.T, date, clock string) *dto.AppointmentResponse {
	t.Helper()
	appt, err := f.usecase.BookAppointment(context.Background(), patientActor, bookingRequest(date, clock))
	if err != nil {
		t.Fatalf("book %s %s: %v", date, clock, err)
	}
	return appt
}
