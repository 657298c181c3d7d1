package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sohelr/goblog/internal/db"
)

var databaseURL string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Admin and seeding tools for the goblog server",
	Long: `blogctl manages a goblog database from the command line.

Subcommands:
  migrate  - Apply pending schema migrations
  seed     - Create or remove test users and posts
  status   - Show row counts
  genpass  - Generate a random strong password`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
}

// connect opens the database named by --db or DATABASE_URL.
func connect() (*sqlx.DB, error) {
	_ = godotenv.Load()

	dsn := databaseURL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, errors.New("database URL required (--db flag or DATABASE_URL)")
	}
	return db.Connect(dsn)
}
