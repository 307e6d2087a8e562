package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/wire"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Inspect name parsing and comparison",
}

var namesParseCmd = &cobra.Command{
	Use:   "parse <raw>",
	Short: "Show how a display name is normalized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.NamesAdapter().Parse(args[0])
	},
}

var namesCompareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Test whether two names denote the same person",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return wire.NamesAdapter().Compare(args[0], args[1], strict)
	},
}

func init() {
	namesCompareCmd.Flags().Bool("strict", false, "Require suffixes to be present on both sides")

	namesCmd.AddCommand(namesParseCmd)
	namesCmd.AddCommand(namesCompareCmd)
}

// NamesCmd returns the names command
func NamesCmd() *cobra.Command {
	return namesCmd
}
