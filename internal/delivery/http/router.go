package http

import (
	"net/http"

	"healthsphere-api/internal/delivery/http/handler"
	"healthsphere-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	paymentHandler     *handler.PaymentHandler
	doctorHandler      *handler.DoctorHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	paymentHandler *handler.PaymentHandler,
	doctorHandler *handler.DoctorHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		paymentHandler:     paymentHandler,
		doctorHandler:      doctorHandler,
		adminHandler:       adminHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/verify-email", r.authHandler.VerifyEmail).Methods(http.MethodPost)
	auth.HandleFunc("/resend-otp", r.authHandler.ResendOTP).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/profile", r.authHandler.UpdateProfile).Methods(http.MethodPut)

	// Doctor listing and login (public)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/login", r.doctorHandler.Login).Methods(http.MethodPost)

	// Appointment routes (protected - patients only)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequirePatient)
	appointments.HandleFunc("", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Payment routes (protected - patients only)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.Use(middleware.RequirePatient)
	payments.HandleFunc("/razorpay", r.paymentHandler.CreateRazorpayOrder).Methods(http.MethodPost)
	payments.HandleFunc("/razorpay/verify", r.paymentHandler.VerifyRazorpayPayment).Methods(http.MethodPost)
	payments.HandleFunc("/stripe", r.paymentHandler.CreateStripeSession).Methods(http.MethodPost)
	payments.HandleFunc("/stripe/verify", r.paymentHandler.VerifyStripePayment).Methods(http.MethodPost)

	// Doctor routes (protected - doctors only)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireDoctor)
	doctors.HandleFunc("/appointments", r.doctorHandler.GetMyAppointments).Methods(http.MethodGet)
	doctors.HandleFunc("/appointments/{id}/complete", r.doctorHandler.CompleteAppointment).Methods(http.MethodPost)
	doctors.HandleFunc("/appointments/{id}", r.doctorHandler.CancelAppointment).Methods(http.MethodDelete)
	doctors.HandleFunc("/availability", r.doctorHandler.ToggleAvailability).Methods(http.MethodPost)
	doctors.HandleFunc("/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctors.HandleFunc("/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctors.HandleFunc("/dashboard", r.doctorHandler.GetDashboard).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.adminHandler.AddDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.adminHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/availability", r.adminHandler.ToggleAvailability).Methods(http.MethodPost)
	admin.HandleFunc("/appointments", r.adminHandler.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", r.adminHandler.CancelAppointment).Methods(http.MethodDelete)
	admin.HandleFunc("/dashboard", r.adminHandler.GetDashboard).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
