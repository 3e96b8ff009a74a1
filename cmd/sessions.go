package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/motorlane/kiosk/cli"
	"github.com/motorlane/kiosk/traffic"
	"github.com/motorlane/kiosk/tui/theme"
)

// NewSessionsCmd creates the `sessions` command, the staff view of the
// traffic database from a terminal instead of the kiosk's admin screen.
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded kiosk sessions",
		RunE:  runSessionsE,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
	return cmd
}

func runSessionsE(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := cli.LoadConfig(cmd)
	if err != nil {
		cli.PrintError(cmd, err)
		return err
	}

	dbPath := cfg.Analytics.SQLitePath
	if dbPath == "" {
		dbPath = defaultTrafficDB(cfgPath)
	}
	store, err := traffic.NewSQLiteStore(dbPath)
	if err != nil {
		cli.PrintError(cmd, err)
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	records, err := store.Recent(ctx, limit)
	if err != nil {
		cli.PrintError(cmd, err)
		return err
	}

	if cli.GetOptions(cmd).JSONOutput {
		out := cmd.OutOrStdout()
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	t := theme.DefaultTheme
	total, _ := store.Count(ctx)
	fmt.Fprintln(cmd.OutOrStdout(), t.Title.Render(
		fmt.Sprintf("%d sessions recorded (%s)", total, filepath.Base(dbPath))))
	for _, rec := range records {
		name := rec.CustomerName
		if name == "" {
			name = t.Muted.Render("anonymous")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %-14s %-12s %d actions\n",
			rec.RecordedAt.Local().Format("2006-01-02 15:04"),
			rec.Screen, name, len(rec.Actions))
	}
	return nil
}
