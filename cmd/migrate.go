package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"merch-intake/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the PostgreSQL schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog, err := loadConfig(false)
		if err != nil {
			return err
		}
		defer closeLog()

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL or DB_HOST, DB_USER, DB_NAME must be set")
		}

		conn, err := db.Open(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		return db.Migrate(cmd.Context(), conn)
	},
}
