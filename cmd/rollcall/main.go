package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/cli"
	"github.com/example/rollcall/internal/db"
	"github.com/example/rollcall/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rollcall",
		Short:   "rollcall - identity resolution for legislative roll-call votes",
		Version: version.String(),
		Long: `rollcall attaches crawled roll-call vote records to the legislators who
cast them and merges duplicate member records from archive and current sources.`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Bootstrap,
	}
	cli.AddGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.MatchCmd())
	rootCmd.AddCommand(cli.DedupeCmd())
	rootCmd.AddCommand(cli.NamesCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	err := rootCmd.Execute()
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
