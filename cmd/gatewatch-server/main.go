package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatewatch/server/internal/config"
	"github.com/gatewatch/server/internal/db"
	"github.com/gatewatch/server/internal/gatewatch/recognition"
	"github.com/gatewatch/server/internal/gatewatch/service"
	"github.com/gatewatch/server/internal/gatewatch/store/sqlite"
	"github.com/gatewatch/server/internal/httpapi"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "gatewatch-server ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, database); err != nil {
			logger.Fatalf("seed dev data: %v", err)
		}
	}

	writer := db.NewWorker(database)
	defer writer.Close()

	// Stores
	vehicleStore := sqlite.NewVehicleStore(database, writer)
	accessLedger := sqlite.NewAccessLedger(database, writer)
	operatorStore := sqlite.NewOperatorStore(database)
	employeeStore := sqlite.NewEmployeeStore(database)

	// Recognition engine
	engineClient := &http.Client{Timeout: time.Duration(cfg.EngineTimeoutMS) * time.Millisecond}
	engine := recognition.NewHTTPEngine(cfg.EngineURL, engineClient)

	// Services
	gateway := service.NewDetectionGateway(engine, service.GatewayConfig{
		MaxFrameBytes: cfg.MaxFrameBytes,
		Timeout:       time.Duration(cfg.EngineTimeoutMS) * time.Millisecond,
	}, logger)
	resolver := service.NewResolver(vehicleStore)
	accessSvc := service.NewAccessService(gateway, resolver, accessLedger, operatorStore, logger)
	vehicleSvc := service.NewVehicleService(vehicleStore, employeeStore)

	sweeper := service.NewLedgerSweeper(accessLedger, service.SweeperConfig{
		RetentionDays: cfg.RetentionDays,
		IntervalHours: cfg.SweepIntervalHours,
	}, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:         logger,
		Addr:           cfg.HTTPAddr,
		AccessService:  accessSvc,
		VehicleService: vehicleSvc,
		OperatorStore:  operatorStore,
		EmployeeStore:  employeeStore,
		MaxFrameBytes:  cfg.MaxFrameBytes,
	})

	go func() {
		logger.Printf("listening on %s (env=%s engine=%s)", cfg.HTTPAddr, cfg.Env, cfg.EngineURL)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
