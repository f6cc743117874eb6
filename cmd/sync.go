package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/config"
	"github.com/marcus/nsisync/internal/db"
	"github.com/marcus/nsisync/internal/feedclient"
	"github.com/marcus/nsisync/internal/nsisync"
	"github.com/marcus/nsisync/internal/output"
)

var syncJSON bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one manual synchronization against the UH feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, database, err := buildOrchestrator()
		if err != nil {
			return err
		}
		defer database.Close()

		result := orch.RunManual(cmd.Context())
		if syncJSON {
			return output.JSON(result)
		}
		output.Info("%s", output.SyncReport(result))
		if !result.Success {
			return fmt.Errorf("sync finished with %d failures", result.Failed)
		}
		return nil
	},
}

var syncWarehousesCmd = &cobra.Command{
	Use:   "warehouses",
	Short: "Reconcile the warehouse-only feed (does not advance the cursor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		orch, database, err := buildOrchestrator()
		if err != nil {
			return err
		}
		defer database.Close()

		result := orch.RunWarehousesOnly(cmd.Context())
		if syncJSON {
			return output.JSON(result)
		}
		output.Info("%s", output.SyncReport(result))
		if !result.Success {
			return fmt.Errorf("warehouse sync finished with %d failures", result.Failed)
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync cursor and reference table counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			return err
		}
		defer database.Close()

		cursor, err := database.GetSyncCursor()
		if err != nil {
			return err
		}
		counts, err := database.TableCounts()
		if err != nil {
			return err
		}

		if syncJSON {
			return output.JSON(map[string]any{
				"cursor": cursor,
				"counts": counts,
			})
		}

		output.Info("Cursor:  %s", output.CursorLine(cursor))
		for _, table := range []string{
			"organizations", "counterparties", "contracts", "warehouses",
			"nomenclature", "accounts", "accounting_accounts",
		} {
			output.Info("  %-20s %d", table, counts[table])
		}

		history, err := database.GetSyncHistory(5)
		if err != nil {
			return err
		}
		if len(history) > 1 {
			output.Info("Recent runs:")
			for _, cur := range history {
				output.Info("  %s", output.CursorLine(cur))
			}
		}
		return nil
	},
}

// buildOrchestrator wires config, feed client, and store together.
func buildOrchestrator() (*nsisync.Orchestrator, *db.DB, error) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.ServerURL == "" {
		return nil, nil, fmt.Errorf("no UH server configured: run 'nsisync config set-server' first")
	}

	database, err := db.Open(getBaseDir())
	if err != nil {
		return nil, nil, err
	}

	feed := feedclient.New(cfg.ServerURL, cfg.APIKey)
	return nsisync.NewOrchestrator(feed, database), database, nil
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&syncJSON, "json", false, "output as JSON")
	syncCmd.AddCommand(syncWarehousesCmd)
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
