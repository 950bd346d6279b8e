package main

import (
	"fmt"
	"os"

	"tourism/config"
	"tourism/helper"
	"tourism/infras/otel"
	"tourism/infras/postgres"
	userRepository "tourism/internal/domains/user/repository"
	"tourism/shared/logger"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the tourism database schema",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runnerCmd(cfg, "up", "Apply all pending migrations", helper.Up))
	rootCmd.AddCommand(runnerCmd(cfg, "down", "Roll back the latest migration", helper.Down))
	rootCmd.AddCommand(runnerCmd(cfg, "step-up", "Apply the next pending migration", helper.StepUp))
	rootCmd.AddCommand(runnerCmd(cfg, "drop", "Roll back every migration", helper.Drop))
	rootCmd.AddCommand(versionCmd(cfg))
	rootCmd.AddCommand(seedAdminCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runnerCmd(cfg *config.Config, use, short string, run func(*config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}
}

func versionCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			version, dirty, err := helper.Version(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("version %d (dirty: %t)\n", version, dirty)

			return nil
		},
	}
}

func seedAdminCmd(cfg *config.Config) *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first admin account",
		Example: `  migrate seed-admin --email admin@example.com --password 'change-me-now'
  migrate seed-admin -e ops@example.com -p 'secret123' -n "Operations"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db := postgres.New(cfg)
			defer db.Close()

			repo := userRepository.New(db, otel.New(cfg))

			created, err := helper.SeedAdmin(cmd.Context(), repo, email, password, fullName)
			if err != nil {
				return err
			}

			if created {
				fmt.Printf("Admin %s created\n", email)
			} else {
				fmt.Printf("Admin %s already exists\n", email)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (min 8 characters)")
	cmd.Flags().StringVarP(&fullName, "name", "n", "Administrator", "admin full name")

	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
