package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ranimhaddad/tijara-backend/internal/config"
	"github.com/ranimhaddad/tijara-backend/internal/modules/account"
	"github.com/ranimhaddad/tijara-backend/internal/modules/inventory"
	"github.com/ranimhaddad/tijara-backend/internal/modules/ledger"
	"github.com/ranimhaddad/tijara-backend/internal/modules/order"
	"github.com/ranimhaddad/tijara-backend/internal/modules/trash"
	"github.com/ranimhaddad/tijara-backend/internal/notify"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.Env)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	accountService := account.NewService(account.NewPostgresRepository(db), cfg.JWTSecret)
	inventoryService := inventory.NewService(inventory.NewPostgresRepository(db))

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.OrderWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.OrderWebhookURL,
			time.Duration(cfg.WebhookTimeoutSeconds)*time.Second)
		log.Info().Str("url", cfg.OrderWebhookURL).Msg("order webhook enabled")
	}
	orderService := order.NewService(order.NewPostgresRepository(db), notifier)

	ledgerService := ledger.NewService(ledger.NewPostgresRepository(db))
	trashService := trash.NewService(inventoryService, orderService, ledgerService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	account.NewHandler(accountService).RegisterPublicRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(account.RequireOwner(accountService))

		account.NewHandler(accountService).RegisterRoutes(r)
		inventory.NewHandler(inventoryService).RegisterRoutes(r)
		order.NewHandler(orderService).RegisterRoutes(r)
		ledger.NewHandler(ledgerService).RegisterRoutes(r)
		trash.NewHandler(trashService).RegisterRoutes(r)
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
