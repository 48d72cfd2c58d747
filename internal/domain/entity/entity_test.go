package entity

import (
	"testing"
	"time"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusPending, AppointmentStatusPending, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, false},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, false},
	}
	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAppointment_Cancel(t *testing.T) {
	at := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
	a := &Appointment{Status: AppointmentStatusConfirmed}
	a.Cancel(CancelledByPatient, "feeling better", at)

	if !a.IsCancelled() || !a.IsTerminal() {
		t.Fatalf("status = %s, want cancelled", a.Status)
	}
	if *a.CancelledBy != CancelledByPatient {
		t.Errorf("cancelled by = %s", *a.CancelledBy)
	}
	if !a.CancelledAt.Equal(at) {
		t.Errorf("cancelled at = %v, want %v", a.CancelledAt, at)
	}
	if *a.CancellationReason != "feeling better" {
		t.Errorf("reason = %q", *a.CancellationReason)
	}
}

func TestAppointment_ScheduledAt(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		date, clock string
		loc         *time.Location
		want        time.Time
	}{
		{"2025-06-01", "10:00", time.UTC, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		{"2025-06-01", "2:30 PM", time.UTC, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)},
		{"2025-06-01T00:00:00.000Z", "12:00 AM", time.UTC, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-06-01", "10:00", berlin, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		a := &Appointment{Date: tt.date, Time: tt.clock}
		got, err := a.ScheduledAt(tt.loc)
		if err != nil {
			t.Errorf("%s %s: unexpected error: %v", tt.date, tt.clock, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s %s = %v, want %v", tt.date, tt.clock, got, tt.want)
		}
	}
}

func TestAppointment_ScheduledAtInvalid(t *testing.T) {
	for _, a := range []Appointment{
		{Date: "06/01/2025", Time: "10:00"},
		{Date: "2025-06-01", Time: "ten"},
		{Date: "", Time: "10:00"},
	} {
		if _, err := a.ScheduledAt(time.UTC); err == nil {
			t.Errorf("%q %q: expected error", a.Date, a.Time)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-06-01", "2025-06-01", true},
		{"2025-06-01T10:00:00Z", "2025-06-01", true},
		{"2025-06-01 10:00:00", "2025-06-01", true},
		{" 2025-06-01 ", "2025-06-01", true},
		{"2025-13-01", "", false},
		{"2025-06-01X", "", false},
		{"not a date", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeDate(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeDate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSlotLabels(t *testing.T) {
	tests := []struct {
		hour         int
		value, label string
	}{
		{0, "00:00", "12:00 AM"},
		{9, "09:00", "9:00 AM"},
		{12, "12:00", "12:00 PM"},
		{23, "23:00", "11:00 PM"},
	}
	for _, tt := range tests {
		if got := SlotValue(tt.hour); got != tt.value {
			t.Errorf("SlotValue(%d) = %q, want %q", tt.hour, got, tt.value)
		}
		if got := SlotLabel(tt.hour); got != tt.label {
			t.Errorf("SlotLabel(%d) = %q, want %q", tt.hour, got, tt.label)
		}
		h, m, err := ParseClock(SlotLabel(tt.hour))
		if err != nil || h != tt.hour || m != 0 {
			t.Errorf("ParseClock(%q) = %d:%d, %v", SlotLabel(tt.hour), h, m, err)
		}
	}
}

func TestJSONTypes_RoundTripThroughDriver(t *testing.T) {
	var factors StringList
	if err := factors.Scan([]byte(`["sleep","work"]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(factors) != 2 || factors[1] != "work" {
		t.Errorf("factors = %v", factors)
	}

	var meta JSON
	if err := meta.Scan(42); err == nil {
		t.Error("expected error scanning an int into JSON")
	}

	var msgs ChatMessages
	if err := msgs.Scan(nil); err != nil || msgs != nil {
		t.Errorf("scan nil = %v, %v", msgs, err)
	}
}
