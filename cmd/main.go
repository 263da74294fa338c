package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "vital_dashboard/docs"
	"vital_dashboard/internal/backend"
	"vital_dashboard/internal/capture"
	"vital_dashboard/internal/config"
	"vital_dashboard/internal/handlers"
	"vital_dashboard/internal/logger"
	"vital_dashboard/internal/repository"
	"vital_dashboard/internal/repository/db"
	"vital_dashboard/internal/server"
	"vital_dashboard/internal/service"
	"vital_dashboard/internal/view"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vital-dashboard",
		Short:        "Dashboard for the vital-sign tracker",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(newExportCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var (
		all  bool
		page bool
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write entries as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope := service.ExportAll
			if page {
				scope = service.ExportPage
			}
			return runExport(cmd.Context(), scope, out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&all, "all", true, "export every entry")
	cmd.Flags().BoolVar(&page, "page", false, "export only the saved table page")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: the export's own name, - for stdout)")
	cmd.MarkFlagsMutuallyExclusive("all", "page")
	return cmd
}

// app is everything both commands need.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sql.DB
	services *service.Service
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Errorw("failed to close sqlite", "err", err)
	}
}

func setup() (*app, error) {
	// bootstrap logger until config is known
	log := logger.Get(logger.InfoLevel)

	cfg, err := loadConfig()
	if err != nil {
		log.Errorw("error reading config", "err", err)
		return nil, err
	}
	log = logger.Init(cfg.Log.Level, cfg.Log.Encoding)

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	compositor, err := newCompositor(cfg.Capture)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Backend:    backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil),
		Source:     capture.NewSource(cfg.Capture.Source, captureTarget(cfg.Capture), cfg.Capture.Timeout),
		Compositor: compositor,
		Options: view.Options{
			Location:   loc,
			TimeLayout: cfg.View.TimeLayout,
			Now:        time.Now,
		},
		PageSize: cfg.View.PageSize,
		Log:      log,
	})
	return &app{cfg: cfg, log: log, db: sqlDB, services: services}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	// a failed first load leaves the offline notice in the view; keep serving
	if err := a.services.Dashboard.Init(cmd.Context()); err != nil {
		a.log.Warnw("initial load failed", "err", err)
	}

	apiHandler := handlers.NewHandler(a.services, a.log).WithPushInterval(a.cfg.WS.Interval)

	srv := server.New(server.Options{
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
	})
	errCh := runHTTPServer(srv, a.cfg.Server.Port, apiHandler, a.log)

	// graceful shutdown
	return waitForShutdown(errCh, srv, a.cfg.Server.ShutdownTimeout, a.log)
}

func runExport(ctx context.Context, scope service.ExportScope, out string, stdout io.Writer) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.services.Dashboard.Init(ctx); err != nil {
		return err
	}
	exp, err := a.services.Dashboard.Export(ctx, scope)
	if err != nil {
		return err
	}

	switch out {
	case "-":
		_, err = io.WriteString(stdout, exp.Body)
		return err
	case "":
		out = exp.Name
	}
	if err := os.WriteFile(out, []byte(exp.Body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	a.log.Infow("export written", "file", out, "rows", exp.Rows)
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(configFile)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "dashboard.db")
		dbPath = "dashboard.db"
	}
	return db.InitDB(dbPath)
}

func newCompositor(c config.Capture) (*capture.Compositor, error) {
	var annotator *capture.Annotator
	if c.LabelTiles {
		var err error
		if annotator, err = capture.NewAnnotator(); err != nil {
			return nil, fmt.Errorf("init tile labels: %w", err)
		}
	}
	return capture.NewCompositor(c.TileWidth, c.TileHeight, annotator), nil
}

func captureTarget(c config.Capture) string {
	if c.Source == capture.SourceFile {
		return c.Path
	}
	return c.URL
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure,
// then performs a graceful shutdown.
func waitForShutdown(errCh <-chan error, srv *server.Server, timeout time.Duration, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Errorw("error starting server", "err", err)
			return err
		}
		return nil
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
