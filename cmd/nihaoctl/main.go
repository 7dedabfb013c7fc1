package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/nihaocards/internal/config"
	"github.com/vytor/nihaocards/internal/db"
	"github.com/vytor/nihaocards/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "nihaoctl",
	Short:         "Admin tool for the NihaoCards database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logger.ParseLevel(config.Load().LogLevel)
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = logger.DEBUG
		}
		logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(os.Stderr)))
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(usersCmd)
}

// openDB opens the database named by --db, falling back to DB_PATH.
// Pending migrations are applied on open.
func openDB(cmd *cobra.Command) (*db.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = config.Load().DBPath
	}
	return db.Open(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
