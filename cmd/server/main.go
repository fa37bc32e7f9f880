package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solasterfm/fund-engine/internal/api"
	"github.com/solasterfm/fund-engine/internal/config"
	"github.com/solasterfm/fund-engine/internal/database"
	"github.com/solasterfm/fund-engine/internal/repository"
	"github.com/solasterfm/fund-engine/internal/scheduler"
	"github.com/solasterfm/fund-engine/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	investorRepo := repository.NewInvestorRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	navRepo := repository.NewNAVRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	fundService := service.NewFundService(fundRepo)
	investorService := service.NewInvestorService(investorRepo)
	accountService := service.NewAccountService(accountRepo, fundRepo, investorRepo, ledgerRepo)
	ledgerService := service.NewLedgerService(accountRepo, ledgerRepo)
	navService := service.NewNAVService(navRepo, fundRepo)
	orderService := service.NewOrderService(
		db,
		orderRepo,
		fundRepo,
		investorRepo,
		accountRepo,
		ledgerRepo,
		navRepo,
		cfg.Engine.ConfirmKey,
	)
	bondService := service.NewBondService()

	// Create router
	router := api.NewRouter(
		systemService,
		fundService,
		investorService,
		accountService,
		ledgerService,
		navService,
		orderService,
		bondService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// NAV sweep scheduler
	sched, err := scheduler.New(navService, cfg.Engine.NavSweepSchedule)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run server and scheduler together; the first failure or a signal
	// brings both down.
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		return sched.Run(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
