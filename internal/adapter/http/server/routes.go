package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/geo-attendance/docs"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	a.setupSwaggerRoutes()
	a.setupMetricsRoute()
	a.setupStudentRoutes()
	a.setupAdminRoutes()

	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(a.staticDir))))
}

// setupStudentRoutes setups the public check-in flow
func (a *API) setupStudentRoutes() {
	s := a.routes.student

	a.mux.HandleFunc("GET /{$}", s.Index)                       // Landing page
	a.mux.HandleFunc("GET /enroll", s.Enroll)                   // Enrollment form
	a.mux.HandleFunc("POST /validate", s.Validate)              // Look the student up
	a.mux.HandleFunc("POST /submit_code", s.SubmitCode)         // Check the lecture code
	a.mux.HandleFunc("GET /lecture", s.Lecture)                 // Lecture page
	a.mux.HandleFunc("POST /mark_attendance", s.MarkAttendance) // Mark attendance
	a.mux.HandleFunc("GET /get_attendance", s.GetAttendance)    // Attendance list
}

// setupAdminRoutes setups lecturer routes, all behind Basic auth
func (a *API) setupAdminRoutes() {
	adm := a.routes.admin

	a.mux.Handle("GET /admin", a.m.BasicAuth(adm.Dashboard))                       // Lecture control page
	a.mux.Handle("POST /admin", a.m.BasicAuth(adm.Dashboard))                      // Start a lecture
	a.mux.Handle("GET /invalidate", a.m.BasicAuth(adm.Invalidate))                 // End the lecture
	a.mux.Handle("GET /reset", a.m.BasicAuth(adm.Reset))                           // Clear attendance
	a.mux.Handle("GET /download", a.m.BasicAuth(adm.Download))                     // XLSX export
	a.mux.Handle("GET /download.pdf", a.m.BasicAuth(adm.DownloadPDF))              // PDF export
	a.mux.Handle("GET /ws/attendance", a.m.BasicAuth(a.routes.dashboard.HandleWS)) // Live dashboard
}

// setupSwaggerRoutes configures Swagger UI endpoint
func (a *API) setupSwaggerRoutes() {
	swaggerURL := httpSwagger.InstanceName(docs.InstanceName)
	a.mux.HandleFunc("GET /swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func (a *API) setupMetricsRoute() {
	a.mux.Handle("GET /metrics", promhttp.Handler())
}
