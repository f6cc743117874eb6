package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/db"
	"github.com/marcus/nsisync/internal/models"
	"github.com/marcus/nsisync/internal/nsisync"
	"github.com/marcus/nsisync/internal/output"
)

var (
	adminJSON bool
	adminYes  bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Maintenance operations on the portal database",
}

var clearNSICmd = &cobra.Command{
	Use:   "clear-nsi",
	Short: "Delete reference data and reset the sync cursor",
	Long: `Deletes all NSI reference tables, preserving organizations still
referenced by users, documents, or packages, then resets the sync cursor so
the next run performs a full re-fetch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance("clear all NSI reference data", nsisync.ClearNSIData)
	},
}

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Delete reference data, documents, packages, and the export queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance("clear ALL portal data", nsisync.ClearPortalData)
	},
}

var seedWarehousesCmd = &cobra.Command{
	Use:   "seed-warehouses",
	Short: "Create conventional warehouses for organizations lacking any",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance("", nsisync.SeedWarehouses)
	},
}

var clearSeededCmd = &cobra.Command{
	Use:   "clear-seeded",
	Short: "Remove warehouses created by seed-warehouses",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaintenance("", nsisync.ClearSeededWarehouses)
	},
}

// runMaintenance opens the store, confirms destructive operations, runs op,
// and renders its result.
func runMaintenance(confirmPrompt string, op func(nsisync.MaintenanceStore) models.MaintenanceResult) error {
	if confirmPrompt != "" && !adminYes {
		return fmt.Errorf("refusing to %s without --yes", confirmPrompt)
	}

	database, err := db.Open(getBaseDir())
	if err != nil {
		return err
	}
	defer database.Close()

	result := op(database)
	if adminJSON {
		return output.JSON(result)
	}
	output.Info("%s", output.MaintenanceReport(result))
	if !result.Success {
		return fmt.Errorf("maintenance operation failed: %s", result.Message)
	}
	return nil
}

func init() {
	adminCmd.PersistentFlags().BoolVar(&adminJSON, "json", false, "output as JSON")
	adminCmd.PersistentFlags().BoolVar(&adminYes, "yes", false, "skip confirmation for destructive operations")
	adminCmd.AddCommand(clearNSICmd)
	adminCmd.AddCommand(clearAllCmd)
	adminCmd.AddCommand(seedWarehousesCmd)
	adminCmd.AddCommand(clearSeededCmd)
	rootCmd.AddCommand(adminCmd)
}
