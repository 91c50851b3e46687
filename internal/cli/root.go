// Package cli wires configuration, logging, the record store and the HTTP
// server behind the ems command.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
	logLevel   string
	port       string
)

var rootCmd = &cobra.Command{
	Use:           "ems",
	Short:         "Employee Management System API",
	Long:          `ems serves the employee records REST API used by the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (postgres://, sqlite://path or memory://); overrides DATABASE_URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "HTTP port; overrides PORT")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
