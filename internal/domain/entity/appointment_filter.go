package entity

// AppointmentFilter is a domain-level filter for querying appointments.
// Empty fields are ignored.
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
	Date      string // Format: YYYY-MM-DD
	Statuses  []AppointmentStatus
}
