package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/nsisync/internal/db"
	"github.com/marcus/nsisync/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the portal reference database",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Initialize(getBaseDir())
		if err != nil {
			return err
		}
		defer database.Close()

		output.Success("Initialized portal database in %s", getBaseDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
