package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klabast/wb-services/shopping-sunday/internal/app"
	"github.com/klabast/wb-services/shopping-sunday/internal/commands"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "check":
			commands.Check(os.Args[2:])
			return
		case "generate":
			commands.Generate(os.Args[2:])
			return
		}
	}

	// .env first so it can feed flag defaults and config overrides
	if err := app.LoadDotEnv(app.DefaultEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config file")
	host := flag.String("host", "", "Host to listen on (default: all interfaces)")
	port := flag.Int("port", app.DefaultPort, "Port to listen on")
	calendarFile := flag.String("calendar", "", "Calendar override file (YAML, default: shipped table)")
	logLevel := flag.String("log-level", app.DefaultLogLevel, "Log level (debug, info, warn, error)")
	cacheTTL := flag.Duration("cache-ttl", app.DefaultCacheTTL, "Response cache TTL, 0 disables caching")
	flag.Parse()

	cfg, err := app.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *host
		case "port":
			cfg.Server.Port = *port
		case "calendar":
			cfg.Calendar.File = *calendarFile
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "cache-ttl":
			cfg.Cache.TTL = *cacheTTL
			cfg.Cache.Enabled = *cacheTTL > 0
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := app.NewLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// A malformed calendar stops the process before it serves anything
	table, err := commands.LoadTable(cfg.Calendar.File)
	if err != nil {
		logger.Fatalf("Failed to load calendar: %v", err)
	}

	srv, err := app.NewServer(app.Options{
		Table:    table,
		Logger:   logger,
		CacheTTL: cfg.CacheTTL(),
	})
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	scheduler, err := srv.StartScheduler(time.Local)
	if err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	years := table.Years()
	logger.Infow("Starting shopping sunday service",
		"addr", cfg.Addr(),
		"dates", table.Len(),
		"years", years,
		"calendar_file", cfg.Calendar.File,
		"cache_ttl", cfg.CacheTTL(),
	)

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		logger.Fatalf("Failed to listen: %v", err)
	}
	if err := serve(ctx, httpServer, ln, shutdownTimeout); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}

// serve runs httpServer on ln until ctx is cancelled, then shuts it down and
// returns once in-flight requests have finished or timeout has passed.
func serve(ctx context.Context, httpServer *http.Server, ln net.Listener, timeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
