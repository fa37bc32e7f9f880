package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/solasterfm/fund-engine/internal/api/handlers"
	custommiddleware "github.com/solasterfm/fund-engine/internal/api/middleware"
	"github.com/solasterfm/fund-engine/internal/config"
	"github.com/solasterfm/fund-engine/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	fundService *service.FundService,
	investorService *service.InvestorService,
	accountService *service.AccountService,
	ledgerService *service.LedgerService,
	navService *service.NAVService,
	orderService *service.OrderService,
	bondService *service.BondService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(fundService)
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fundHandler.GetFund)
				r.Put("/state", fundHandler.SetFundState)
			})
		})

		r.Route("/investor", func(r chi.Router) {
			investorHandler := handlers.NewInvestorHandler(investorService, orderService)
			r.Post("/", investorHandler.CreateInvestor)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investorHandler.GetInvestor)
				r.Put("/kyc", investorHandler.SetKycStatus)
				r.Get("/orders", investorHandler.InvestorOrders)
			})
		})

		accountHandler := handlers.NewAccountHandler(accountService, ledgerService)
		r.Route("/account", func(r chi.Router) {
			r.Post("/", accountHandler.OpenAccounts)

			r.Route("/{uuid}/fund/{fundId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.Position)
				r.Put("/state", accountHandler.SetAccountState)
			})
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/deposit", accountHandler.Deposit)
				r.Post("/withdraw", accountHandler.Withdraw)
				r.Get("/cash", accountHandler.CashStatement)
				r.Get("/units", accountHandler.UnitStatement)
			})
		})

		r.Route("/nav", func(r chi.Router) {
			navHandler := handlers.NewNAVHandler(navService)
			r.Post("/", navHandler.PublishQuote)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/validate", navHandler.ValidateQuote)
			})

			r.Route("/fund/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", navHandler.FundQuotes)
				r.Get("/current", navHandler.CurrentQuote)
			})
		})

		r.Route("/order", func(r chi.Router) {
			orderHandler := handlers.NewOrderHandler(orderService)
			r.Post("/", orderHandler.CreateOrder)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", orderHandler.GetOrder)
				r.Post("/submit", orderHandler.SubmitOrder)
				r.Post("/validate", orderHandler.ValidateOrder)
				r.Post("/confirm", orderHandler.ConfirmOrder)
				r.Post("/settle", orderHandler.SettleOrder)
				r.Post("/cancel", orderHandler.CancelOrder)
			})
		})

		r.Route("/bond", func(r chi.Router) {
			bondHandler := handlers.NewBondHandler(bondService)
			r.Post("/schedule", bondHandler.CouponSchedule)
			r.Post("/amortization", bondHandler.Amortization)
			r.Post("/yield", bondHandler.Yield)
		})
	})

	return r
}
