package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations from the migrations directory",
	Run: func(cmd *cobra.Command, args []string) {
		dsn := os.Getenv("MYSQL_DSN")
		if dsn == "" {
			user := os.Getenv("MYSQL_USER")
			pass := os.Getenv("MYSQL_PASS")
			host := os.Getenv("MYSQL_HOST")
			port := config.GetEnv("MYSQL_PORT", "3306")
			db := os.Getenv("MYSQL_DB")
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, pass, host, port, db)
		}
		src := config.GetEnv("MIGRATIONS_PATH", "file://migrations")

		m, err := migrate.New(src, "mysql://"+dsn)
		if err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if migrateDown {
			err = m.Steps(-1)
		} else {
			err = m.Up()
		}
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("migrate: %v", err)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration")
	rootCmd.AddCommand(migrateCmd)
}
