package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"shopledger.GO/config"
)

var (
	migrateDir  string
	migrateDown bool
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations (use --down to roll back one step)",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := migrate.New("file://"+migrateDir, "mysql://"+config.MySQLDSN())
		if err != nil {
			fmt.Printf("Migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown {
			err = m.Steps(-1)
		} else {
			err = m.Up()
		}
		if err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("No pending migrations.")
				return
			}
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		version, dirty, _ := m.Version()
		fmt.Printf("Migrations applied. Schema version: %d (dirty=%v)\n", version, dirty)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "migrations", "Directory with migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back one migration step")
	rootCmd.AddCommand(migrateCmd)
}
