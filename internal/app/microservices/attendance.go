package microservices

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Temutjin2k/geo-attendance/config"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/export"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/http/handler"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/http/middleware"
	"github.com/Temutjin2k/geo-attendance/internal/adapter/http/server"
	repo "github.com/Temutjin2k/geo-attendance/internal/adapter/postgres"
	broker "github.com/Temutjin2k/geo-attendance/internal/adapter/rabbit"
	"github.com/Temutjin2k/geo-attendance/internal/domain/models"
	"github.com/Temutjin2k/geo-attendance/internal/service/attendance"
	"github.com/Temutjin2k/geo-attendance/internal/service/ticket"
	"github.com/Temutjin2k/geo-attendance/pkg/logger"
	"github.com/Temutjin2k/geo-attendance/pkg/postgres"
	"github.com/Temutjin2k/geo-attendance/pkg/rabbit"
	"github.com/Temutjin2k/geo-attendance/pkg/trm"
	ws "github.com/Temutjin2k/geo-attendance/pkg/wsHub"
)

type AttendanceService struct {
	postgresDB *postgres.PostgreDB
	rabbit     *rabbit.RabbitMQ
	broker     *broker.AttendanceBroker
	hub        *ws.ConnectionHub
	dashboard  *handler.Dashboard
	httpServer *server.API

	stopPublisher context.CancelFunc
	wg            sync.WaitGroup
	cfg config.Config
	log logger.Logger
}

func NewAttendance(ctx context.Context, cfg config.Config, log logger.Logger) (*AttendanceService, error) {
	s := &AttendanceService{
		cfg: cfg,
		log: log,
	}

	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "Failed to setup database", err)
		return nil, err
	}
	s.postgresDB = postgresDB

	if err := repo.Migrate(ctx, postgresDB.Pool); err != nil {
		log.Error(ctx, "Failed to migrate database", err)
		s.close(ctx)
		return nil, err
	}

	creds, err := middleware.NewCredentials(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		s.close(ctx)
		return nil, fmt.Errorf("invalid admin credentials: %w", err)
	}

	s.hub = ws.NewConnHub(log)

	// the dashboard lists through the service, which is built after it
	var svc *attendance.Service
	s.dashboard = handler.NewDashboard(s.hub, func(ctx context.Context) ([]models.AttendanceRecord, error) {
		return svc.List(ctx)
	}, log)

	var notifier attendance.Notifier = s.dashboard
	if cfg.RabbitMQ.Enabled {
		s.rabbit, err = rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log, broker.Topology())
		if err != nil {
			log.Error(ctx, "Failed to connect to rabbitMQ", err)
			s.close(ctx)
			return nil, err
		}
		s.broker = broker.NewAttendanceBroker(s.rabbit, log)
		notifier = s.broker
	}

	svc = attendance.NewService(
		repo.NewStudentRepo(postgresDB.Pool),
		repo.NewLectureRepo(postgresDB.Pool),
		repo.NewAttendanceRepo(postgresDB.Pool),
		ticket.NewTokenService(cfg.Ticket.Secret, cfg.Ticket.TTL),
		notifier,
		trm.New(postgresDB.Pool),
		log,
	)

	s.httpServer, err = server.New(cfg.HTTP, creds, server.Handlers{
		Attendance: svc,
		Lectures:   svc,
		XLSX:       export.NewXLSXExporter(),
		PDF:        export.NewPDFExporter(),
		Dashboard:  s.dashboard,
		DB:         postgresDB.Pool,
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		s.close(ctx)
		return nil, err
	}

	return s, nil
}

func (s *AttendanceService) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		cancel()
		s.close(ctx)
		s.log.Info(ctx, "attendance service closed")
	}()

	if s.broker != nil {
		// cancelled by close once the HTTP server has drained
		pubCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
		s.stopPublisher = stop
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.broker.RunPublisher(pubCtx)
		}()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.broker.ConsumeDashboard(ctx, s.dashboard.AttendanceChanged); err != nil {
				errCh <- fmt.Errorf("dashboard consumer: %w", err)
			}
		}()
	}

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	s.log.Info(ctx, "Attendance service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (s *AttendanceService) close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.stopPublisher != nil {
		s.stopPublisher()
	}
	s.wg.Wait()

	if s.hub != nil {
		s.hub.Close()
	}

	if s.rabbit != nil {
		if err := s.rabbit.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to close rabbitMQ connection", "error", err.Error())
		}
	}

	if s.postgresDB != nil && s.postgresDB.Pool != nil {
		s.postgresDB.Pool.Close()
	}
}
