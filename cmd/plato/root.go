package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/plato/internal/config"
	"github.com/hammamikhairi/plato/internal/display"
	"github.com/hammamikhairi/plato/internal/domain"
	"github.com/hammamikhairi/plato/internal/logger"
	"github.com/hammamikhairi/plato/internal/plato"
	"github.com/hammamikhairi/plato/internal/recipe"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
	logFile string
	baseURL string
	demo    bool
)

// app holds what every command needs once flags and config are resolved.
var app struct {
	cfg     *config.Config
	log     *logger.Logger
	api     domain.RecipeAPI
	closeFn func()
}

var rootCmd = &cobra.Command{
	Use:   "plato",
	Short: "Browse recipes from the terminal",
	Long: `Plato shows a batch of random recipes, a type-ahead search bar and
full recipe pages, backed by a remote recipe API.

Run without a subcommand to open the full-screen browser.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Args:              cobra.NoArgs,
	RunE:              runBrowser,
}

func init() {
	// Finalizers run even when a command fails.
	cobra.OnFinalize(teardown)

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "plato.yml", "config file path")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	f.BoolVar(&quiet, "quiet", false, "disable all logging")
	f.StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	f.StringVar(&baseURL, "base-url", "", "recipe API base URL (overrides config)")
	f.BoolVar(&demo, "demo", false, "serve built-in recipes instead of calling the API")
	_ = f.MarkHidden("demo")
}

// setup resolves configuration, opens the log output and builds the
// recipe source.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if verbose {
		cfg.LogLevel = logger.LevelVerbose.String()
	}
	if quiet {
		cfg.LogLevel = logger.LevelOff.String()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, closeOut := openLog(cfg.LogFile)
	log := logger.New(cfg.Level(), out)

	// Route Go's default log package through the logger so nothing
	// writes over the alt screen.
	stdw := log.Writer()
	stdlog.SetOutput(stdw)
	stdlog.SetFlags(0)
	closeFn := func() {
		stdlog.SetOutput(os.Stderr)
		stdw.Close()
		closeOut()
	}

	var api domain.RecipeAPI
	if demo {
		api = recipe.NewMemorySource(log)
		log.Info("demo mode: serving built-in recipes")
	} else {
		api = plato.NewClient(cfg.BaseURL, log, plato.WithHTTPTimeout(cfg.HTTPTimeout))
		log.Info("recipe API at %s", cfg.BaseURL)
	}

	app.cfg, app.log, app.api, app.closeFn = cfg, log, api, closeFn
	return nil
}

func teardown() {
	if app.closeFn != nil {
		app.closeFn()
		app.closeFn = nil
	}
}

// openLog directs logs to a file by default so the terminal stays clean.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func runBrowser(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := display.New(app.api, app.cfg, app.log, display.WithContext(ctx))
	if err := display.NewUI(model).Run(ctx); err != nil {
		app.log.Error("display: %v", err)
		return err
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
