package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/caredesk/hospital-api/internal/config"
	"github.com/caredesk/hospital-api/internal/handler/v1"
	"github.com/caredesk/hospital-api/internal/repository"
	"github.com/caredesk/hospital-api/internal/service"
	"github.com/caredesk/hospital-api/pkg/auth"
	"github.com/caredesk/hospital-api/pkg/database"
	"github.com/caredesk/hospital-api/pkg/logger"
	"github.com/caredesk/hospital-api/pkg/metrics"
	"github.com/caredesk/hospital-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	if err := database.SeedAdmin(db, cfg.Admin, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("hospital_api")
	go pollDBStats(db, collector)

	jwtManager := auth.NewJWTManager(cfg.JWT)

	auditSvc := service.NewAuditService(repository.NewAuditRepository(db), collector, log)
	defer auditSvc.Shutdown()

	deptRepo := repository.NewDepartmentRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	deps := v1.Deps{
		Config:       cfg,
		DB:           db,
		Log:          log,
		JWTManager:   jwtManager,
		Metrics:      collector,
		Departments:  service.NewDepartmentService(deptRepo, auditSvc, log),
		Doctors:      service.NewDoctorService(doctorRepo, deptRepo, auditSvc, log),
		Patients:     service.NewPatientService(patientRepo, auditSvc, log),
		Appointments: service.NewAppointmentService(apptRepo, patientRepo, doctorRepo, auditSvc, log),
		Auth:         service.NewAuthService(repository.NewUserRepository(db), jwtManager, auditSvc, log),
		Admin:        service.NewAdminService(db, log),
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      v1.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

// pollDBStats keeps the open-connections gauge current.
func pollDBStats(db *gorm.DB, collector *metrics.Collector) {
	for range time.Tick(15 * time.Second) {
		if sqlDB, err := db.DB(); err == nil {
			collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
		}
	}
}
