package http

import (
	"net/http"

	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"
	"telehealth-api/pkg/metrics"
	"telehealth-api/pkg/response"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Account      *handler.AccountHandler
	Doctor       *handler.DoctorHandler
	Patient      *handler.PatientHandler
	Consultation *handler.ConsultationHandler
	Rating       *handler.RatingHandler
	Transport    *handler.TransportHandler
	Pharmacy     *handler.PharmacyHandler
	Donation     *handler.DonationHandler
	Admin        *handler.AdminHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	metrics           *metrics.Metrics
	corsMiddleware    *middleware.CORSMiddleware
	loggerMiddleware  *middleware.LoggerMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	rateLimiter       *middleware.RateLimiter
}

func NewRouter(
	handlers Handlers,
	m *metrics.Metrics,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		metrics:           m,
		corsMiddleware:    corsMiddleware,
		loggerMiddleware:  loggerMiddleware,
		metricsMiddleware: middleware.NewMetricsMiddleware(m),
		rateLimiter:       rateLimiter,
	}
}

// Setup registers every route. CORS wraps the router itself so preflight requests are
// answered even for paths whose routes only accept other methods.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()
	api.Use(r.rateLimiter.Handle)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Accounts
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Account.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Account.Login).Methods(http.MethodPost)

	// Doctors
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.HandleFunc("/profile", h.Doctor.CreateProfile).Methods(http.MethodPost)
	doctors.HandleFunc("/available", h.Doctor.ListAvailable).Methods(http.MethodGet)
	doctors.HandleFunc("/{userId}/profile", h.Doctor.GetProfile).Methods(http.MethodGet)
	doctors.HandleFunc("/{userId}/availability", h.Doctor.SetAvailability).Methods(http.MethodPut)

	// Patients
	api.HandleFunc("/patients/{userId}/profile", h.Patient.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/patients/{userId}/profile", h.Patient.UpdateProfile).Methods(http.MethodPut)

	// Consultations
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.HandleFunc("", h.Consultation.Create).Methods(http.MethodPost)
	consultations.HandleFunc("/patient/{patientId}", h.Consultation.ListByPatient).Methods(http.MethodGet)
	consultations.HandleFunc("/doctor/{doctorId}", h.Consultation.ListByDoctor).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}", h.Consultation.Get).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}", h.Consultation.Update).Methods(http.MethodPut)
	consultations.HandleFunc("/{id}/accept", h.Consultation.Accept).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}/complete", h.Consultation.Complete).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}/cancel", h.Consultation.Cancel).Methods(http.MethodPost)

	// Ratings
	api.HandleFunc("/ratings", h.Rating.Submit).Methods(http.MethodPost)

	// Transport
	providers := api.PathPrefix("/transport/providers").Subrouter()
	providers.HandleFunc("", h.Transport.ListProviders).Methods(http.MethodGet)
	providers.HandleFunc("", h.Transport.CreateProvider).Methods(http.MethodPost)
	providers.HandleFunc("/available", h.Transport.ListAvailableProviders).Methods(http.MethodGet)
	providers.HandleFunc("/{id}", h.Transport.UpdateProvider).Methods(http.MethodPut)
	providers.HandleFunc("/{id}/fare", h.Transport.QuoteFare).Methods(http.MethodGet)

	bookings := api.PathPrefix("/transport/bookings").Subrouter()
	bookings.HandleFunc("", h.Transport.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/pending", h.Transport.ListPendingBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/patient/{patientId}", h.Transport.ListBookingsByPatient).Methods(http.MethodGet)
	bookings.HandleFunc("/provider/{providerId}", h.Transport.ListBookingsByProvider).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", h.Transport.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", h.Transport.UpdateBooking).Methods(http.MethodPut)

	// Pharmacy
	api.HandleFunc("/pharmacies", h.Pharmacy.ListPharmacies).Methods(http.MethodGet)
	api.HandleFunc("/pharmacies", h.Pharmacy.CreatePharmacy).Methods(http.MethodPost)
	api.HandleFunc("/pharmacies/{id}/inventory", h.Pharmacy.GetInventory).Methods(http.MethodGet)
	api.HandleFunc("/pharmacies/{id}/inventory", h.Pharmacy.SetInventory).Methods(http.MethodPut)
	api.HandleFunc("/medicines", h.Pharmacy.CreateMedicine).Methods(http.MethodPost)
	api.HandleFunc("/medicines/search", h.Pharmacy.SearchMedicine).Methods(http.MethodGet)

	// Donations
	api.HandleFunc("/donations", h.Donation.ListDonations).Methods(http.MethodGet)
	api.HandleFunc("/donations", h.Donation.CreateDonation).Methods(http.MethodPost)
	api.HandleFunc("/donations/stats", h.Donation.Stats).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests", h.Donation.ListRequests).Methods(http.MethodGet)
	api.HandleFunc("/donation-requests", h.Donation.CreateRequest).Methods(http.MethodPost)
	api.HandleFunc("/donation-requests/{id}", h.Donation.UpdateRequestStatus).Methods(http.MethodPut)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/stats", h.Admin.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/pending-doctors", h.Admin.PendingDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/pending-consultations", h.Admin.PendingConsultations).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", h.Admin.AuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{userId}/verify", h.Admin.VerifyDoctor).Methods(http.MethodPut)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.router.Use(middleware.RequestID)
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
