package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohelr/goblog/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for the blog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus() error {
	db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	userCount, err := store.NewUserStore(db).Count(ctx)
	if err != nil {
		return err
	}
	postCount, err := store.NewPostStore(db).Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("users: %d\n", userCount)
	fmt.Printf("posts: %d\n", postCount)
	return nil
}
