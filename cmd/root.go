package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/workdir"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "nsisync",
	Short: "Reference-data sync engine for the UH accounting portal",
	Long: `nsisync - Incremental NSI reference-data synchronization for the UH portal.

Pulls master-data changes (organizations, counterparties, contracts,
warehouses, nomenclature, accounts, chart-of-accounts entries) from the UH
accounting system and reconciles them into the local portal database.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	rootCmd.PersistentFlags().StringVarP(&baseDir, "dir", "d", "", "portal data directory (default: current directory)")
}

func initBaseDir() {
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			baseDir = "."
		} else {
			baseDir = cwd
		}
	}
	baseDir = workdir.ResolveBaseDir(baseDir)
}

func getBaseDir() string {
	return baseDir
}
