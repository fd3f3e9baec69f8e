package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/leetcs/gomonday/config"
	"github.com/leetcs/gomonday/monday"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *monday.Client

	// Command flags
	filterExpr string
	preset     string
	pageSize   int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gomonday",
	Short: "A CLI for querying monday.com boards, items and users",
	Long: `gomonday is a CLI tool for the monday.com GraphQL API. It lists boards,
items and users, transparently following pagination cursors and honoring
the provider's rate and complexity limits.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(usersCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client, err = monday.NewClient(cfg.Monday.APIKey,
		monday.WithURL(cfg.Monday.URL),
		monday.WithLogger(logger),
		monday.WithMaxRetries(cfg.Monday.MaxRetries),
		monday.WithRateLimitWindow(time.Duration(cfg.Monday.RateLimitSeconds)*time.Second),
		monday.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Monday.TimeoutSeconds) * time.Second}),
	)
	if err != nil {
		return fmt.Errorf("failed to create monday client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression resolves the filter flag or a named preset from config
func getFilterExpression() (string, error) {
	if filterExpr != "" && preset != "" {
		return "", fmt.Errorf("cannot use both --filter and --preset")
	}
	if preset != "" {
		expr, ok := cfg.Filters[preset]
		if !ok {
			return "", fmt.Errorf("preset %q not found in config", preset)
		}
		return expr, nil
	}
	return filterExpr, nil
}
