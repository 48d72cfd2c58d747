package http

import (
	"net/http"

	"mindcare-backend/internal/delivery/http/handler"
	"mindcare-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Appointment *handler.AppointmentHandler
	Slot        *handler.SlotHandler
	Dashboard   *handler.DashboardHandler
	Alert       *handler.AlertHandler
	Doctor      *handler.DoctorHandler
	Patient     *handler.PatientHandler
	Mood        *handler.MoodHandler
	Message     *handler.MessageHandler
	Chat        *handler.ChatHandler
	AuditLog    *handler.AuditLogHandler
	Health      *handler.HealthHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

// Setup mounts every route. CORS wraps the whole router so preflight requests
// are answered even though no route is registered for OPTIONS.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check (public)
	api.HandleFunc("/health", h.Health.Check).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Appointments
	protected.HandleFunc("/appointments", h.Appointment.BookAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", h.Appointment.GetAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.DeleteAppointment).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{id}/status", h.Appointment.UpdateStatus).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/confirm", h.Appointment.ConfirmAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/decline", h.Appointment.DeclineAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/complete", h.Appointment.CompleteAppointment).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}/cancel",
		middleware.RequirePatient(http.HandlerFunc(h.Appointment.CancelAppointment))).Methods(http.MethodPost)

	// Doctors; /doctors/me must be registered before /doctors/{id}
	protected.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	protected.HandleFunc("/doctors", h.Doctor.GetDoctors).Methods(http.MethodGet)
	protected.Handle("/doctors/me",
		middleware.RequireDoctor(http.HandlerFunc(h.Doctor.GetMyProfile))).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}/available-slots", h.Slot.GetAvailableSlots).Methods(http.MethodGet)

	// Dashboards
	protected.HandleFunc("/dashboard/doctor/{doctorId}", h.Dashboard.GetDoctorDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/patient/{patientId}", h.Dashboard.GetPatientDashboard).Methods(http.MethodGet)

	// Alerts
	protected.HandleFunc("/alerts", h.Alert.GetAlerts).Methods(http.MethodGet)
	protected.HandleFunc("/alerts/mark-read", h.Alert.MarkAlertsRead).Methods(http.MethodPost)

	// Patients
	protected.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients", h.Patient.GetPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", h.Patient.UpdatePatient).Methods(http.MethodPut)

	// Mood tracking
	protected.HandleFunc("/mood", h.Mood.CreateMoodEntry).Methods(http.MethodPost)
	protected.HandleFunc("/mood", h.Mood.GetMoodEntries).Methods(http.MethodGet)

	// Messaging
	protected.HandleFunc("/messages", h.Message.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/messages", h.Message.GetMessages).Methods(http.MethodGet)
	protected.HandleFunc("/messages/{id}/read", h.Message.MarkMessageRead).Methods(http.MethodPost)

	// Assistant chat
	protected.HandleFunc("/chat/sessions", h.Chat.CreateSession).Methods(http.MethodPost)
	protected.HandleFunc("/chat/sessions", h.Chat.GetSessions).Methods(http.MethodGet)
	protected.HandleFunc("/chat/sessions/{id}", h.Chat.GetSession).Methods(http.MethodGet)
	protected.HandleFunc("/chat/sessions/{id}/messages", h.Chat.SendMessage).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	return r.corsMiddleware.Handle(r.router)
}
