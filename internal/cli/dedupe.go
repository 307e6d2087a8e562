package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/wire"
)

// DedupeCmd returns the dedupe command
func DedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dedupe",
		Aliases: []string{"find-duplicates"},
		Short:   "Find and merge duplicate member records",
		Long: `Find member records that describe the same person across archive
and current sources, and print each merge group.

With --write the services and votes of merged members move to the group's
lowest id and the duplicates are deleted. Running it again is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireServices(); err != nil {
				return err
			}
			write, _ := cmd.Flags().GetBool("write")
			_, err := wire.MergeAdapter().FindDuplicates(NewContext(), write)
			return err
		},
	}

	cmd.Flags().BoolP("write", "w", false, "Execute the merges")
	return cmd
}
