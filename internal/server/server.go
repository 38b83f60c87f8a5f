// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eibon93/vcelstva-hub/api"
	"github.com/eibon93/vcelstva-hub/internal/config"
	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/hubservice"
	"github.com/eibon93/vcelstva-hub/internal/ingest"
	"github.com/eibon93/vcelstva-hub/internal/monitoring"
	"github.com/eibon93/vcelstva-hub/internal/repository/postgres"
	"github.com/eibon93/vcelstva-hub/internal/repository/rediscache"
	"github.com/eibon93/vcelstva-hub/internal/repository/timescale"
	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config        *config.Config
	srv           *http.Server
	hubservice    *hubservice.HubService
	monitoring    *monitoring.Service
	measurementDB database.DB
	appDB         database.DB
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start wires services and begins listening for requests
func (s *Server) Start() error {
	s.measurementDB = initMeasurementDB(s.config.Database.MeasurementDB)
	s.appDB = initAppDB(s.config.Database.AppDB)

	apiaries := postgres.NewApiaryRepository(s.appDB)
	hives := postgres.NewHiveRepository(s.appDB)
	notes := postgres.NewHiveNoteRepository(s.appDB)
	devices := postgres.NewDeviceRepository(s.appDB)
	connections := postgres.NewConnectionRepository(s.appDB)
	measurements := timescale.NewMeasurementRepository(s.measurementDB)

	deviceCache := rediscache.NewDeviceCache(
		rediscache.NewClient(s.config.Redis), devices, s.config.Redis.DeviceTTL)

	s.hubservice = hubservice.New(apiaries, hives, notes, devices, connections, measurements, deviceCache)
	if err := s.hubservice.Validate(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService()
	s.setupCleanupHandlers()

	verifyTokens := s.config.Ingest.VerifyTokens
	generic := ingest.NewGenericAdapter(deviceCache, connections, measurements, verifyTokens)
	sigfox := ingest.NewSigfoxAdapter(deviceCache, connections, measurements, verifyTokens)

	router := api.NewRouter(s.hubservice, generic, sigfox)
	s.srv.Handler = handlers.RecoveryHandler()(
		handlers.CORS(
			handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(handlers.LoggingHandler(os.Stdout, router)))

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.appDB.Close(); err != nil {
		nuts.L.Errorf("[Server] Error closing app DB: %v", err)
	}
	if err := s.measurementDB.Close(); err != nil {
		nuts.L.Errorf("[Server] Error closing measurement DB: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupCleanupHandlers() {
	s.hubservice.Cleanup.OnCleanup("device.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Device %s and all associated data deleted", id)
		s.monitoring.RecordEvent("device_deletion", map[string]string{
			"device_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("hive.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Hive %s and all associated notes deleted", id)
		s.monitoring.RecordEvent("hive_deletion", map[string]string{
			"hive_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("measurements.deleted", func(id string) {
		s.monitoring.RecordEvent("measurement_deletion", map[string]string{
			"device_id": id,
		})
	})
}

func initMeasurementDB(cfg config.PostgresConfig) database.DB {
	db, err := database.NewTimescaleDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to measurement DB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping measurement DB: %v", err)
	}
	return db
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to app DB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping app DB: %v", err)
	}
	return db
}
