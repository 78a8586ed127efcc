package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reelbase/reelbase/internal/config"
	"github.com/reelbase/reelbase/internal/database"
	"github.com/reelbase/reelbase/internal/logging"
	"github.com/reelbase/reelbase/internal/stats"
	"github.com/reelbase/reelbase/internal/watcher"
	"github.com/reelbase/reelbase/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	basePath    string
	dbPath      string
	ratingsPath string
	logFile     string
	verbosity   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reelbase",
		Short: "Reelbase - Movie catalog API server",
		Long:  `Reelbase is a read-only HTTP API over a movie catalog database, with a ratings database joined in for aggregate scores.`,
		RunE:  run,
	}

	// Flags; unset flags fall back to environment / defaults
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVar(&basePath, "base-path", "", "Route prefix for the movie endpoints (or set BASE_PATH env var)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "Movie catalog SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().StringVarP(&ratingsPath, "ratings-db", "r", "", "Ratings SQLite database path (or set RATINGS_DB_PATH env var)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Rotating log file path (or set LOG_FILE env var)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("reelbase %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	// Flags take precedence over environment
	if port != 0 {
		cfg.Port = port
	}
	if bind != "" {
		cfg.Bind = bind
	}
	if basePath != "" {
		cfg.BasePath = basePath
	}
	if dbPath != "" {
		cfg.MoviesDBPath = dbPath
	}
	if ratingsPath != "" {
		cfg.RatingsDBPath = ratingsPath
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	// Validate bind address if provided
	if cfg.Bind != "" {
		if ip := net.ParseIP(cfg.Bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", cfg.Bind)
		}
	}

	logging.Setup(verbosity, cfg.LogFile)

	log.Info().
		Str("version", version).
		Int("port", cfg.Port).
		Str("bind", cfg.Bind).
		Str("base_path", cfg.BasePath).
		Str("database", cfg.MoviesDBPath).
		Str("ratings_database", cfg.RatingsDBPath).
		Msg("Starting Reelbase")

	// Open the catalog database; failure here is fatal, there is no
	// partial-availability mode
	db, err := database.New(cfg.MoviesDBPath, cfg.RatingsDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open catalog database")
	}
	defer db.Close()

	// Catalog stats collector
	statsCollector := stats.New(db)
	if err := statsCollector.Start(cfg.StatsSchedule); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.StatsSchedule).Msg("Failed to start stats collector")
	}
	defer statsCollector.Stop()

	// Watch the catalog file for external replacement
	fileWatcher, err := watcher.New(cfg.MoviesDBPath, statsCollector)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize catalog file watcher")
	} else {
		fileWatcher.Start()
		defer fileWatcher.Stop()
	}

	server := web.NewServer(db, statsCollector, cfg)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Reelbase stopped")
	return nil
}
