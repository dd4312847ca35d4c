// edgardash is a terminal client for the EDGAR filings backend.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/internal/config"
	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/internal/store"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global state, populated by the root command before any subcommand runs.
var (
	cfg     *config.Config
	logger  *slog.Logger
	api     *edgar.Client
	apiBase string
	asJSON  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edgardash",
	Short: "edgardash — SEC EDGAR filings from the terminal",
	Long: `edgardash talks to an EDGAR filings backend: browse companies and
filings, run and watch download jobs, export results and manage the
backend settings. Search history and display preferences are kept
locally.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			level = override
		}
		logger = infra.NewLogger(level, cfg.Logging.Format, os.Stderr)
		slog.SetDefault(logger)

		apiBase = config.ResolveAPIBase(cfg, logger)
		client, err := transport.New(transport.Options{
			BaseURL:   apiBase,
			Timeout:   cfg.API.Timeout(),
			UserAgent: cfg.API.UserAgent,
			Logger:    logger,
			MaxRPS:    cfg.API.MaxRPS,
		})
		if err != nil {
			return fmt.Errorf("failed to create API client: %w", err)
		}
		api = edgar.New(client, edgar.WithCache(cfg.API.CacheSize, cfg.API.CacheTTL()))
		return nil
	},
}

func init() {
	config.Version = version

	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON instead of tables")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
}

// openStore opens the configured local backend. Callers close it.
func openStore() (store.Backend, error) {
	b, err := store.OpenBackend(cfg.Storage.Backend, cfg.Storage.Directory())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	return b, nil
}

// pageSize resolves a --size flag, falling back to the saved preference.
func pageSize(cmd *cobra.Command) int {
	if size, _ := cmd.Flags().GetInt("size"); size > 0 {
		return size
	}
	b, err := openStore()
	if err != nil {
		logger.Warn("using default page size", "error", err)
		return edgar.DefaultPageSize
	}
	defer b.Close()
	prefs, err := store.NewPreferenceStore(b, logger)
	if err != nil {
		return edgar.DefaultPageSize
	}
	return prefs.Get().DefaultPageSize
}

// remember records a search in the local history. Failures only warn.
func remember(query, kind string) {
	b, err := openStore()
	if err != nil {
		logger.Warn("search not recorded", "error", err)
		return
	}
	defer b.Close()
	h, err := store.NewSearchHistory(b, logger)
	if err == nil {
		err = h.Add(query, kind)
	}
	if err != nil {
		logger.Warn("search not recorded", "query", query, "error", err)
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edgardash %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend reachability and effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Describe(cfg)
		_, pingErr := api.Filings.Stats(cmd.Context())
		now := utils.NowET()
		filingDate := utils.FilingDateFor(now)
		nextDay := utils.FormatDateET(utils.NextBusinessDay(now))

		if asJSON {
			backend := "ok"
			if pingErr != nil {
				backend = pingErr.Error()
			}
			return printJSON(map[string]any{
				"version":           version,
				"api":               apiBase,
				"backend":           backend,
				"edgar":             utils.EdgarStatus(),
				"filing_date":       filingDate,
				"next_business_day": nextDay,
				"settings":          settings,
			})
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  edgardash — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:      %s (%s)\n", version, commit)
		fmt.Printf("  EDGAR:        %s\n", utils.EdgarStatus())
		fmt.Printf("  Time (ET):    %s\n", utils.FormatDateTimeET(now))
		fmt.Printf("  Filed now:    dated %s (next business day %s)\n", filingDate, nextDay)
		fmt.Printf("  Backend:      %s\n", apiBase)
		if pingErr != nil {
			var te *transport.Error
			if errors.As(pingErr, &te) && te.StatusCode != 0 {
				fmt.Printf("  Reachable:    ⚠️  HTTP %d (%s)\n", te.StatusCode, te.Message)
			} else {
				fmt.Printf("  Reachable:    ❌ %s\n", pingErr)
			}
		} else {
			fmt.Println("  Reachable:    ✅ yes")
		}
		if f := cfg.File(); f != "" {
			fmt.Printf("  Config file:  %s\n", f)
		}
		fmt.Println()

		fmt.Println("  Configuration:")
		for _, s := range settings {
			value := s.Value
			if value == "" {
				value = "(empty)"
			}
			fmt.Printf("    %-32s %-28s [%s]\n", s.Key, value, s.Source)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
