// Package cli implements the turretsite command line: the HTTP server and the
// management commands that migrate the schema, seed site content and
// provision back-office operators.
//
// Configuration comes from environment variables (see internal/config). A
// .env file, when present, is loaded first; variables already set in the
// environment take precedence over it.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tbourn/turret-landing/internal/config"
	"github.com/tbourn/turret-landing/internal/sysutil"
)

var (
	envFile string

	// cfg is loaded by the root PersistentPreRunE before any subcommand runs.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "turretsite",
	Short: "Landing site of the Arsenal anti-drone turret",
	Long: `turretsite serves the Arsenal landing site and manages its data.

Commands:
  turretsite serve             Start the HTTP server
  turretsite migrate           Create or update the database schema
  turretsite init-site         Create site settings and base catalog content
  turretsite init-software     Seed the software section
  turretsite update-site-name  Apply the Arsenal branding to site settings
  turretsite create-admin      Provision a back-office operator`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(envFile)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
}

// setup loads the dotenv file and the configuration and installs the global
// logger.
func setup(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sysutil.SetupLogger(c.LogLevel, c.LogPretty, os.Stderr)

	cfg = c
	return nil
}
