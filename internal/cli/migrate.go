package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/nutripal/backend/internal/database"
)

func init() {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}

	RootCmd.AddCommand(cmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DBDriver)
	return nil
}
