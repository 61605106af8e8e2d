package commands

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/finance-planner/internal/client"
	"github.com/sbilibin2017/finance-planner/internal/frontend"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/spf13/cobra"
)

// NewFrontendCommand starts the web frontend server.
func NewFrontendCommand(loadConfig ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "frontend",
		Short: "Run the web frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := logger.Initialize(cfg.LogLevel, logger.EncodingJSON); err != nil {
				return err
			}
			defer logger.Sync()

			backend := client.NewBackend(cfg.BackendBaseURL, &http.Client{Timeout: cfg.HTTPClientTimeout})
			handler, err := newFrontendRouter(backend, cfg.BackendBaseURL)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    net.JoinHostPort(cfg.FrontendHost, cfg.FrontendPort),
				Handler: handler,
			}
			return serve(cmd.Context(), srv, "frontend")
		},
	}
}

func newFrontendRouter(loader frontend.OverviewLoader, backendBaseURL string) (http.Handler, error) {
	server, err := frontend.NewServer(loader, backendBaseURL)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	server.RegisterRoutes(r)
	return r, nil
}
