package http

import (
	"net/http"

	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router                *mux.Router
	availabilityHandler   *handler.AvailabilityHandler
	scheduleGridHandler   *handler.ScheduleGridHandler
	bookingHandler        *handler.BookingHandler
	doctorHandler         *handler.DoctorHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	metricsMiddleware     *middleware.MetricsMiddleware
	metricsGatherer       prometheus.Gatherer
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	scheduleGridHandler *handler.ScheduleGridHandler,
	bookingHandler *handler.BookingHandler,
	doctorHandler *handler.DoctorHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	metricsGatherer prometheus.Gatherer,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		availabilityHandler:   availabilityHandler,
		scheduleGridHandler:   scheduleGridHandler,
		bookingHandler:        bookingHandler,
		doctorHandler:         doctorHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		loggingMiddleware:     loggingMiddleware,
		metricsMiddleware:     metricsMiddleware,
		metricsGatherer:       metricsGatherer,
	}
}

func (r *Router) Setup() http.Handler {
	// Prometheus scrape endpoint
	r.router.Handle("/metrics", promhttp.HandlerFor(r.metricsGatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Scheduling routes (protected - admin or staff)
	api.Handle("/availability/resolve", r.staffOnly(r.availabilityHandler.ResolveDoctors)).Methods(http.MethodPost)
	api.Handle("/schedule/grid", r.staffOnly(r.scheduleGridHandler.GetGrid)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/assign", r.staffOnly(r.bookingHandler.AssignDoctor)).Methods(http.MethodPut)

	// Admin routes (protected - admin or staff)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireStaff)

	// Doctor directory
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)

	// Doctor shifts
	admin.HandleFunc("/doctors/{id}/schedules", r.doctorScheduleHandler.GetSchedules).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/schedules", r.doctorScheduleHandler.ReplaceSchedules).Methods(http.MethodPut)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	// CORS wraps the router so preflight requests are answered before route matching.
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) staffOnly(h http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequireStaff(h))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
