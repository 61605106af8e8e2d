package commands

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/finance-planner/docs"
	"github.com/sbilibin2017/finance-planner/internal/handlers"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/services"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewAPICommand starts the JSON API server.
func NewAPICommand(loadConfig ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := logger.Initialize(cfg.LogLevel, logger.EncodingJSON); err != nil {
				return err
			}
			defer logger.Sync()

			b, err := newBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.close()

			docs.SwaggerInfo.Host = cfg.SwaggerHost

			srv := &http.Server{
				Addr:    net.JoinHostPort(cfg.AppHost, cfg.AppPort),
				Handler: newAPIRouter(b.db, b.transactions),
			}
			return serve(cmd.Context(), srv, "HTTP API")
		},
	}
}

// newAPIRouter mounts the API routes. Write routes run inside a database transaction.
func newAPIRouter(db *sqlx.DB, svc *services.TransactionService) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.CORSMiddleware)
	r.Use(middlewares.OptionsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/{profile}/transactions", handlers.NewListTransactionsHandler(svc))
	r.Get("/{profile}/transactions/stats", handlers.NewGetStatsHandler(svc))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.TxMiddleware(db))
		r.Post("/{profile}/transactions", handlers.NewAddTransactionHandler(svc))
		r.Put("/{profile}/transactions/{id}", handlers.NewUpdateTransactionHandler(svc))
	})

	return r
}
