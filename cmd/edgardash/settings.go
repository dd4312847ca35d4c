package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/internal/state"
	"github.com/seenimoa/edgardash/internal/store"
	"github.com/seenimoa/edgardash/pkg/models"
	"github.com/seenimoa/edgardash/pkg/utils"
)

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)

	historyListCmd.Flags().Bool("remote", false, "show the backend's search history instead")
	historyListCmd.Flags().Int("limit", edgar.DefaultRecentLimit, "entries to show with --remote")
	historyClearCmd.Flags().Bool("remote", false, "also clear the backend's search history")
	historyCmd.AddCommand(historyListCmd, historyRemoveCmd, historyClearCmd)

	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsResetCmd)

	for _, c := range []*cobra.Command{exportCSVCmd, exportJSONCmd} {
		c.Flags().StringSlice("id", nil, "filing ids to export")
		c.Flags().String("cik", "", "export filings of this CIK")
		c.Flags().String("form", "", "export filings of this form type")
		c.Flags().String("from", "", "filed on or after (YYYY-MM-DD)")
		c.Flags().String("to", "", "filed on or before (YYYY-MM-DD)")
		c.Flags().String("dir", "", "output directory (default: export.dir)")
		c.Flags().String("name", "", "file name (default: filings-export.csv or .json)")
	}
	exportCmd.AddCommand(exportCSVCmd, exportJSONCmd)

	rootCmd.AddCommand(settingsCmd, historyCmd, prefsCmd, exportCmd)
}

// splitAssignment parses key=value.
func splitAssignment(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", arg)
	}
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), nil
}

// --- Backend settings ---

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the backend settings",
}

func printSettings(s models.Settings) error {
	if asJSON {
		return printJSON(s)
	}
	fmt.Println("⚙️  Backend settings")
	fmt.Printf("   user_agent           %s\n", s.EdgarUserAgent)
	fmt.Printf("   requests_per_second  %d\n", s.RequestsPerSecond)
	fmt.Printf("   auto_download        %t\n", s.AutoDownloadEnabled)
	fmt.Printf("   schedule             %s\n", orDash(s.DownloadSchedule))
	fmt.Printf("   form_types           %s\n", orDash(strings.Join(s.DefaultFormTypes, ",")))
	fmt.Printf("   retention_days       %d\n", s.RetentionDays)
	fmt.Printf("   max_concurrent       %d\n", s.MaxConcurrentDownloads)
	if s.UpdatedAt != "" {
		fmt.Printf("   updated              %s\n", s.UpdatedAt)
	}
	return nil
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the backend settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := state.NewSettingsState(api.Settings).Load(cmd.Context())
		if err := snapErr(snap.Error); err != nil {
			return err
		}
		return printSettings(snap.Settings)
	},
}

// applySetting sets one backend settings field from its CLI name.
func applySetting(s *models.Settings, key, value string) error {
	var err error
	switch key {
	case "user_agent":
		s.EdgarUserAgent = value
	case "requests_per_second":
		s.RequestsPerSecond, err = strconv.Atoi(value)
	case "auto_download":
		s.AutoDownloadEnabled, err = strconv.ParseBool(value)
	case "schedule":
		s.DownloadSchedule = value
	case "form_types":
		s.DefaultFormTypes = nil
		for _, f := range strings.Split(value, ",") {
			if f = strings.TrimSpace(f); f != "" {
				s.DefaultFormTypes = append(s.DefaultFormTypes, f)
			}
		}
	case "retention_days":
		s.RetentionDays, err = strconv.Atoi(value)
	case "max_concurrent":
		s.MaxConcurrentDownloads, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change backend settings (user_agent, requests_per_second, auto_download, schedule, form_types, retention_days, max_concurrent)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		type assignment struct{ key, value string }
		var changes []assignment
		for _, arg := range args {
			key, value, err := splitAssignment(arg)
			if err != nil {
				return err
			}
			// validate before touching the backend
			if err := applySetting(&models.Settings{}, key, value); err != nil {
				return err
			}
			changes = append(changes, assignment{key, value})
		}

		saved, err := state.NewSettingsState(api.Settings).Update(cmd.Context(), func(s *models.Settings) {
			for _, c := range changes {
				_ = applySetting(s, c.key, c.value)
			}
		})
		if err != nil {
			return err
		}
		if !asJSON {
			fmt.Println("✅ Settings saved")
		}
		return printSettings(saved)
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the backend's default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := state.NewSettingsState(api.Settings).Reset(cmd.Context())
		if err != nil {
			return err
		}
		return printSettings(saved)
	},
}

// --- Search history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recent searches",
}

func openHistory() (*store.SearchHistory, func(), error) {
	b, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	h, err := store.NewSearchHistory(b, logger)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return h, func() { b.Close() }, nil
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			limit, _ := cmd.Flags().GetInt("limit")
			searches, err := api.History.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(searches)
			}
			w := newTable("QUERY", "TYPE", "RESULTS", "WHEN")
			for _, s := range searches {
				row(w, s.Query, orDash(s.SearchType), s.ResultCount, s.SearchedAt)
			}
			return w.Flush()
		}

		h, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()

		entries := h.Entries()
		if asJSON {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No searches yet.")
			return nil
		}
		w := newTable("QUERY", "KIND", "WHEN (ET)")
		for _, e := range entries {
			row(w, e.Query, orDash(e.Kind), utils.FormatDateTimeET(e.SearchedAt))
		}
		return w.Flush()
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Forget one search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()
		return h.Remove(args[0])
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()
		if err := h.Clear(); err != nil {
			return err
		}
		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			if err := api.History.Clear(cmd.Context()); err != nil {
				return err
			}
		}
		fmt.Println("🧹 Search history cleared")
		return nil
	},
}

// --- Local preferences ---

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Local display preferences",
}

func withPrefs(fn func(*store.PreferenceStore) error) error {
	b, err := openStore()
	if err != nil {
		return err
	}
	defer b.Close()
	prefs, err := store.NewPreferenceStore(b, logger)
	if err != nil {
		return err
	}
	return fn(prefs)
}

func printPrefs(p store.Preferences) error {
	if asJSON {
		return printJSON(p)
	}
	fmt.Printf("   dark_mode         %t\n", p.DarkMode)
	fmt.Printf("   auto_refresh      %t\n", p.AutoRefresh)
	fmt.Printf("   refresh_interval  %ds\n", p.RefreshIntervalSec)
	fmt.Printf("   notifications     %t\n", p.Notifications)
	fmt.Printf("   page_size         %d\n", p.DefaultPageSize)
	return nil
}

func applyPref(p *store.Preferences, key, value string) error {
	var err error
	switch key {
	case "dark_mode":
		p.DarkMode, err = strconv.ParseBool(value)
	case "auto_refresh":
		p.AutoRefresh, err = strconv.ParseBool(value)
	case "refresh_interval":
		p.RefreshIntervalSec, err = strconv.Atoi(strings.TrimSuffix(value, "s"))
	case "notifications":
		p.Notifications, err = strconv.ParseBool(value)
	case "page_size":
		p.DefaultPageSize, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPrefs(func(s *store.PreferenceStore) error {
			return printPrefs(s.Get())
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change preferences (dark_mode, auto_refresh, refresh_interval, notifications, page_size)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scratch := store.DefaultPreferences()
		for _, arg := range args {
			key, value, err := splitAssignment(arg)
			if err != nil {
				return err
			}
			if err := applyPref(&scratch, key, value); err != nil {
				return err
			}
		}
		return withPrefs(func(s *store.PreferenceStore) error {
			updated, err := s.Update(func(p *store.Preferences) {
				for _, arg := range args {
					key, value, _ := splitAssignment(arg)
					_ = applyPref(p, key, value)
				}
			})
			if err != nil {
				return err
			}
			return printPrefs(updated)
		})
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPrefs(func(s *store.PreferenceStore) error {
			p, err := s.Reset()
			if err != nil {
				return err
			}
			return printPrefs(p)
		})
	},
}

// --- Export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filings to a file",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export filings as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, models.ExportCSV)
	},
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export filings as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, models.ExportJSON)
	},
}

func runExport(cmd *cobra.Command, format models.ExportFormat) error {
	ids, _ := cmd.Flags().GetStringSlice("id")
	var criteria *models.FilingSearchRequest
	if len(ids) == 0 {
		c := models.FilingSearchRequest{}
		c.CIK, _ = cmd.Flags().GetString("cik")
		c.FormType, _ = cmd.Flags().GetString("form")
		from, to, err := dateRange(cmd)
		if err != nil {
			return err
		}
		c.DateFrom, c.DateTo = from, to
		if c.CIK != "" {
			cik, err := cikArg(c.CIK)
			if err != nil {
				return err
			}
			c.CIK = cik
		}
		criteria = &c
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Export.Dir
	}
	name, _ := cmd.Flags().GetString("name")
	exporter := state.NewExporter(api.Export, dir).WithName(name)

	var path string
	var err error
	if format == models.ExportCSV {
		path, err = exporter.CSV(cmd.Context(), ids, criteria)
	} else {
		path, err = exporter.JSON(cmd.Context(), ids, criteria)
	}
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(map[string]string{"file": path})
	}
	fmt.Printf("💾 Exported %s to %s\n", format, path)
	return nil
}
