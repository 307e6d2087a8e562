package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the resolution audit trail",
		Long:  "Show recent writes made by match and dedupe runs (default 50), newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireServices(); err != nil {
				return err
			}
			runID, _ := cmd.Flags().GetString("run")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = 50
			}
			return wire.LogAdapter().List(NewContext(), runID, limit)
		},
	}

	cmd.Flags().String("run", "", "Only entries written by this run id")
	cmd.Flags().IntP("limit", "n", 50, "Maximum number of entries")
	return cmd
}
