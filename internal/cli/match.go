package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/rollcall/internal/adapters/cli"
	"github.com/example/rollcall/internal/wire"
)

// MatchCmd returns the match command
func MatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "match",
		Aliases: []string{"match-votes"},
		Short:   "Attach vote records to members",
		Long: `Match the voter names of every fully crawled (year, chamber) cohort
against the members who served in it, and report what could not be matched.

Without --write this is a dry run: nothing is stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireServices(); err != nil {
				return err
			}
			opts := cliadapter.MatchOptions{}
			opts.Write, _ = cmd.Flags().GetBool("write")
			opts.ShowAll, _ = cmd.Flags().GetBool("all")
			opts.DisplayURLs, _ = cmd.Flags().GetBool("display-urls")
			opts.MinYear, _ = cmd.Flags().GetInt("min-year")
			opts.IncludeDone, _ = cmd.Flags().GetBool("include-done")

			_, err := wire.MatchAdapter().Match(NewContext(), opts)
			return err
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Store member ids on matched vote rows")
	cmd.Flags().BoolP("all", "a", false, "Also list matched names and skipped cohorts")
	cmd.Flags().Bool("display-urls", false, "Print biography URLs for unmatched members")
	cmd.Flags().Int("min-year", 0, "Only consider cohorts from this year on")
	cmd.Flags().Bool("include-done", false, "Re-run cohorts whose votes are already all assigned")
	return cmd
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show crawl status per cohort",
		Long:  "Show whether each (year, chamber) cohort is completely crawled and eligible for matching.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireServices(); err != nil {
				return err
			}
			return wire.MatchAdapter().Status(NewContext())
		},
	}
}
