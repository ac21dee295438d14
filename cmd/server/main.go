/*
main.go - Application entry point

PURPOSE:
  Starts the overtime engine's HTTP server and hosts the offline
  commands that read the same database.

COMMANDS:
  serve              HTTP API (default when no command is given)
  summary [YYYY-MM]  Monthly summary for the terminal
  workdays YYYY-MM   Statutory working days of a month
  holidays [YEAR]    Holiday list of a year
  import FILE        Import a record export from the browser application

FLAGS (persistent):
  --db        SQLite database path (default: overtime.db)
              Use ":memory:" for an in-memory database
  --settings  YAML/JSON settings file; saved into the database on start
              (ignored by workdays and holidays, which never open it)
  --today     Fixed "today" (YYYY-MM-DD) for reproducible output
  --debug     Debug logging

ENVIRONMENT:
  A .env file in the working directory is loaded if present.
  OVERTIME_DB, OVERTIME_PORT and OVERTIME_SETTINGS supply flag defaults.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection

SEE ALSO:
  - commands.go: Offline commands
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/warp/overtime-engine/api"
	"github.com/warp/overtime-engine/core"
	"github.com/warp/overtime-engine/factory"
	"github.com/warp/overtime-engine/holiday"
	"github.com/warp/overtime-engine/store/sqlite"
	"github.com/warp/overtime-engine/worktime"
)

var (
	dbPath       string
	settingsPath string
	todayFlag    string
	debug        bool
	port         int

	logger   *slog.Logger
	store    *sqlite.Store
	book     *worktime.Book
	calendar *holiday.Calendar
	clock    core.Clock
)

var rootCmd = &cobra.Command{
	Use:           "overtime",
	Short:         "Overtime and premium-pay engine",
	Long:          `Turns daily clock-in/clock-out entries into overtime, shortage and premium pay under Japanese labour rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger = api.NewLogger(level)
		slog.SetDefault(logger)

		clock = core.SystemClock{}
		if todayFlag != "" {
			d, err := core.ParseDate(todayFlag)
			if err != nil {
				return fmt.Errorf("--today: %w", err)
			}
			clock = core.FixedClock{Date: d}
		}

		calendar = holiday.New()
		if cmd.Annotations[noStoreAnnotation] != "" {
			return nil
		}

		var err error
		store, err = sqlite.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		book = worktime.NewBook(store).WithLogger(logger)

		if settingsPath != "" {
			if err := seedSettings(cmd.Context(), settingsPath); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("OVERTIME_DB", "overtime.db"), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", os.Getenv("OVERTIME_SETTINGS"), "settings file to load on start")
	rootCmd.PersistentFlags().StringVar(&todayFlag, "today", "", "fixed today (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	defaultPort, err := strconv.Atoi(envOr("OVERTIME_PORT", "8080"))
	if err != nil {
		defaultPort = 8080
	}
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().IntVar(&port, "port", defaultPort, "HTTP server port")
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(workdaysCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(importCmd)
}

// noStoreAnnotation marks commands that never open the database.
const noStoreAnnotation = "overtime/no-store"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes the command line and closes the store whether or not the
// command succeeded. Cobra skips post-run hooks when RunE fails.
func run(args []string) (err error) {
	store = nil
	defer func() {
		if store == nil {
			return
		}
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func runServer(ctx context.Context) error {
	handler := api.NewHandler(book, store, calendar, clock)
	handler.Logger = logger
	router := api.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "db", dbPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func seedSettings(ctx context.Context, path string) error {
	doc, err := factory.LoadSettingsFile(path)
	if err != nil {
		return fmt.Errorf("--settings: %w", err)
	}
	overtime, salary, err := doc.Build()
	if err != nil {
		return fmt.Errorf("--settings: %w", err)
	}
	if err := store.SaveOvertimeSettings(ctx, overtime); err != nil {
		return err
	}
	if err := store.SaveSalarySettings(ctx, salary); err != nil {
		return err
	}
	logger.Debug("settings loaded", "path", path)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
