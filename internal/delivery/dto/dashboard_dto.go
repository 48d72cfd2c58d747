package dto

// MonthlyAppointmentCount is one calendar-month bucket of the doctor's appointments
type MonthlyAppointmentCount struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}

type WeeklyProgress struct {
	Week     string `json:"week"`
	Improved int    `json:"improved"`
	Stable   int    `json:"stable"`
	Declined int    `json:"declined"`
}

type DoctorDashboardResponse struct {
	TotalPatients       int                       `json:"total_patients"`
	ActivePatients      int                       `json:"active_patients"`
	TodayAppointments   int                       `json:"today_appointments"`
	PendingMessages     int64                     `json:"pending_messages"`
	MonthlyAppointments []MonthlyAppointmentCount `json:"monthly_appointments"`
	PatientProgress     []WeeklyProgress          `json:"patient_progress"`
}

type MoodPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type ProgressMetric struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type PatientDashboardResponse struct {
	AverageMood           float64          `json:"average_mood"`
	ChatSessions          int64            `json:"chat_sessions"`
	CompletedAppointments int              `json:"completed_appointments"`
	ProgressPercentage    float64          `json:"progress_percentage"`
	MoodData              []MoodPoint      `json:"mood_data"`
	ProgressData          []ProgressMetric `json:"progress_data"`
}
