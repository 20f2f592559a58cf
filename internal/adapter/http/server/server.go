package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/geo-attendance/config"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/http/handler"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/http/middleware"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
)

const (
	serverIPAddress = "%s:%s"
	serviceName     = "attendance"
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr      string
	staticDir string
	log       logger.Logger
}

type handlers struct {
	health    *handler.Health
	student   *handler.Student
	admin     *handler.Admin
	dashboard *handler.Dashboard
}

// Handlers are the attendance collaborators the API routes to.
type Handlers struct {
	Attendance handler.AttendanceService
	Lectures   handler.LectureService
	XLSX       handler.Exporter
	PDF        handler.Exporter
	Dashboard  *handler.Dashboard
	DB         handler.Pinger
}

func New(cfg config.HTTPConfig, admin middleware.Credentials, h Handlers, logger logger.Logger) (*API, error) {
	if h.Attendance == nil || h.Lectures == nil || h.Dashboard == nil {
		return nil, errors.New("attendance services are required")
	}

	pages, err := handler.NewPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	api := &API{
		mux: http.NewServeMux(),
		routes: &handlers{
			health:    handler.NewHealth(serviceName, h.DB, logger),
			student:   handler.NewStudent(h.Attendance, pages, logger),
			admin:     handler.NewAdmin(h.Lectures, h.XLSX, h.PDF, pages, logger),
			dashboard: h.Dashboard,
		},
		m:         middleware.NewMiddleware(admin, logger),
		addr:      fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Port),
		staticDir: cfg.StaticDir,
		log:       logger,
	}

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// Handler exposes the wrapped mux, used by tests.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(serviceName)(a.mux))))
}
