package cmd

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/motorlane/kiosk/chat"
	"github.com/motorlane/kiosk/cli"
	"github.com/motorlane/kiosk/config"
	"github.com/motorlane/kiosk/history"
	"github.com/motorlane/kiosk/idle"
	"github.com/motorlane/kiosk/inventory"
	"github.com/motorlane/kiosk/logging"
	"github.com/motorlane/kiosk/screen"
	"github.com/motorlane/kiosk/session"
	"github.com/motorlane/kiosk/traffic"
	"github.com/motorlane/kiosk/tui"
	"github.com/motorlane/kiosk/tui/theme"
)

// NewRunCmd creates the `run` command, the kiosk's main entry point.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the showroom kiosk",
		Long: `Starts the customer-facing kiosk journey in fullscreen mode.

Configuration is read from the nearest kiosk.yml (or the --config flag)
and re-applied live when the file changes. Without a config file the
kiosk runs with built-in defaults and the embedded demo catalog.`,
		RunE: runKioskE,
	}

	cmd.Flags().Bool("offline", false, "Force the offline scripted assistant")
	return cmd
}

func runKioskE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, cfgPath, err := cli.LoadConfig(cmd)
	if err != nil {
		cli.PrintError(cmd, err)
		return err
	}
	logging.Apply(cfg.Logging)
	if err := cfg.Validate(); err != nil {
		cli.PrintError(cmd, err)
		return err
	}

	tui.InitializeTUI()

	catalog := inventory.Default()
	if cfg.Inventory.CatalogPath != "" {
		catalog, err = inventory.Load(cfg.Inventory.CatalogPath)
		if err != nil {
			cli.PrintError(cmd, err)
			return err
		}
	}

	store := session.NewStore(
		session.WithTransitionWindow(cfg.Journey.TransitionWindow.Std()),
	)

	// Registration order matters: the history synchronizer must observe
	// navigations before the traffic logger schedules them, and the shell
	// last of all.
	mem := history.NewMemory()
	history.Attach(store, mem)

	var trafficStore *traffic.SQLiteStore
	var trafficLogger *traffic.Logger
	var wsCollector *traffic.WSCollector
	if cfg.Analytics.Enabled {
		var collectors traffic.Multi

		dbPath := cfg.Analytics.SQLitePath
		if dbPath == "" {
			dbPath = defaultTrafficDB(cfgPath)
		}
		trafficStore, err = traffic.NewSQLiteStore(dbPath)
		if err != nil {
			// The kiosk keeps serving visitors without local analytics.
			logger.WithError(err).Warn("traffic database unavailable")
			trafficStore = nil
		} else {
			collectors = append(collectors, trafficStore)
		}

		if cfg.Analytics.Endpoint != "" {
			wsCollector = traffic.NewWSCollector(cfg.Analytics.Endpoint)
			collectors = append(collectors, wsCollector)
		}

		if len(collectors) > 0 {
			trafficLogger = traffic.NewLogger(store, collectors,
				traffic.WithDebounceWindow(cfg.Journey.DebounceWindow.Std()))
		}
	}

	monitor := idle.NewMonitor(store, idle.WithThreshold(cfg.Journey.IdleTimeout.Std()))
	defer monitor.Stop()

	offline, _ := cmd.Flags().GetBool("offline")
	assistant := buildAssistant(cfg.Assistant, offline)

	sctx := &tui.ScreenContext{
		Store:     store,
		Catalog:   catalog,
		Assistant: assistant,
		Traffic:   trafficStore,
		Keys:      tui.DefaultKeyMap(),
		Theme:     theme.DefaultTheme,
	}
	shell := tui.NewShell(sctx, tui.DefaultRegistry(), monitor, mem)

	if boot := screen.ID(cfg.Journey.DefaultScreen); boot != "" && boot != screen.Default {
		store.NavigateTo(boot, "", nil)
	}

	if cfgPath != "" {
		watcher, werr := config.NewWatcher(cfgPath, func(next *config.Config) {
			// Logging changes apply immediately; timer changes need a
			// restart because the monitors snapshot them at startup.
			logger.Info("configuration updated; timer changes apply on next start")
		})
		if werr != nil {
			logger.WithError(werr).Warn("config watching unavailable")
		} else {
			defer watcher.Close()
		}
	}

	program := tea.NewProgram(shell, tea.WithAltScreen())
	_, runErr := program.Run()

	if trafficLogger != nil {
		trafficLogger.Flush()
		trafficLogger.Close()
	}
	if wsCollector != nil {
		_ = wsCollector.Close()
	}
	if trafficStore != nil {
		_ = trafficStore.Close()
	}
	return runErr
}

// buildAssistant picks the chat backend. Anything short of a fully
// configured live endpoint falls back to the offline scripted assistant; the
// aiChat screen must always answer.
func buildAssistant(cfg config.AssistantConfig, offline bool) chat.Assistant {
	if offline || !cfg.Enabled {
		return chat.NewScripted()
	}
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	apiKey := os.Getenv(keyEnv)
	if apiKey == "" && cfg.BaseURL == "" {
		return chat.NewScripted()
	}
	return chat.NewOpenAIAssistant(chat.OpenAIOptions{
		BaseURL: cfg.BaseURL,
		APIKey:  apiKey,
		Model:   cfg.Model,
	})
}

// defaultTrafficDB places the traffic database next to the config file, or
// under .kiosk in the working directory when running configless.
func defaultTrafficDB(cfgPath string) string {
	if cfgPath != "" {
		return filepath.Join(filepath.Dir(cfgPath), ".kiosk", "traffic.db")
	}
	return filepath.Join(".kiosk", "traffic.db")
}
