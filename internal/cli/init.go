package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/rollcall/internal/config"
	"github.com/example/rollcall/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the rollcall config and database",
		Long: `Write a default .rollcall/config.yaml in the working directory (unless
one exists) and create the database schema it points at.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := os.Stat(config.Path(dir)); err == nil {
				fmt.Printf("Config already present at %s\n", config.Path(dir))
			} else {
				if err := config.SaveConfig(dir, config.Default()); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", config.Path(dir))
			}

			if err := requireServices(); err != nil {
				return err
			}
			fmt.Printf("✓ Database initialized (%s)\n", db.Engine())
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  rollcall status")
			fmt.Println("  rollcall dedupe")
			fmt.Println("  rollcall match")
			return nil
		},
	}
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small fixture dataset",
		Long:  "Insert a handful of members, sessions and votes for trying out match and dedupe.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireServices(); err != nil {
				return err
			}
			database, err := db.GetDB()
			if err != nil {
				return err
			}
			if err := db.SeedFixtures(database, db.Engine()); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Fixtures loaded")
			return nil
		},
	}
}
