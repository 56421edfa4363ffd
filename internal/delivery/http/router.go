package http

import (
	"net/http"

	"hospital-scheduling/internal/delivery/http/handler"
	"hospital-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router                    *mux.Router
	log                       *logrus.Logger
	authHandler               *handler.AuthHandler
	availabilityHandler       *handler.AvailabilityHandler
	appointmentHandler        *handler.AppointmentHandler
	patientAppointmentHandler *handler.PatientAppointmentHandler
	slotHandler               *handler.SlotHandler
	doctorHandler             *handler.DoctorHandler
	auditLogHandler           *handler.AuditLogHandler
	authMiddleware            *middleware.AuthMiddleware
	corsMiddleware            *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	patientAppointmentHandler *handler.PatientAppointmentHandler,
	slotHandler *handler.SlotHandler,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                    mux.NewRouter(),
		log:                       log,
		authHandler:               authHandler,
		availabilityHandler:       availabilityHandler,
		appointmentHandler:        appointmentHandler,
		patientAppointmentHandler: patientAppointmentHandler,
		slotHandler:               slotHandler,
		doctorHandler:             doctorHandler,
		auditLogHandler:           auditLogHandler,
		authMiddleware:            authMiddleware,
		corsMiddleware:            corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(middleware.Recovery(r.log))
	r.router.Use(r.corsMiddleware.Handle)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Directory and slot grid (any authenticated role)
	directory := api.NewRoute().Subrouter()
	directory.Use(r.authMiddleware.Authenticate)
	directory.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	directory.HandleFunc("/doctors/{doctorId}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	directory.HandleFunc("/doctors/{doctorId}/availability", r.availabilityHandler.GetDoctorAvailability).Methods(http.MethodGet)
	directory.HandleFunc("/slots", r.slotHandler.GetSlotGrid).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/availability", r.availabilityHandler.GetMyAvailability).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.availabilityHandler.AddAvailability).Methods(http.MethodPost)
	doctor.HandleFunc("/availability/{id}", r.availabilityHandler.UpdateAvailability).Methods(http.MethodPut)
	doctor.HandleFunc("/availability/{id}", r.availabilityHandler.DeleteAvailability).Methods(http.MethodDelete)
	doctor.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.patientAppointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.patientAppointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", r.patientAppointmentHandler.CancelMyAppointment).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
