package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sohelr/goblog/internal/models"
	"github.com/sohelr/goblog/internal/store"
)

var (
	seedUserCount int
	postsPerUser  int
	minWords      int
	maxWords      int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or remove test data",
}

var seedUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create test users with generated passwords",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedUsers()
	},
}

var seedPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Create random posts for the test users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedPosts()
	},
}

var seedCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove all test users and their posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedCleanup()
	},
}

func init() {
	seedUsersCmd.Flags().IntVar(&seedUserCount, "count", 10, "Number of test users")
	seedPostsCmd.Flags().IntVar(&postsPerUser, "per-user", 3, "Number of posts per user")
	seedPostsCmd.Flags().IntVar(&minWords, "min-words", 50, "Minimum words per post")
	seedPostsCmd.Flags().IntVar(&maxWords, "max-words", 200, "Maximum words per post")

	seedCmd.AddCommand(seedUsersCmd, seedPostsCmd, seedCleanupCmd)
	rootCmd.AddCommand(seedCmd)
}

func runSeedUsers() error {
	db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	users := store.NewUserStore(db)
	ctx := context.Background()

	fmt.Printf("Seeding database with %d test users...\n", seedUserCount)

	created := 0
	for i := 1; i <= seedUserCount; i++ {
		username := fmt.Sprintf("testuser%d", i)

		password, err := generatePassword(16)
		if err != nil {
			return err
		}

		_, err = users.Register(ctx, username, password)
		if errors.Is(err, store.ErrDuplicateUsername) {
			fmt.Printf("User %s already exists, skipping.\n", username)
			continue
		}
		if err != nil {
			return err
		}

		created++
		fmt.Printf("Created %s with password: %s\n", username, password)
	}

	fmt.Printf("Created %d test users.\n", created)
	return nil
}

func runSeedPosts() error {
	db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	var users []models.User
	err = db.SelectContext(ctx, &users, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username LIKE 'testuser%'
		ORDER BY username
	`)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return errors.New("no test users found, run `blogctl seed users` first")
	}

	fmt.Printf("Seeding posts for %d test users...\n", len(users))

	posts := store.NewPostStore(db)
	total := 0
	for _, u := range users {
		for i := 0; i < postsPerUser; i++ {
			title := loremSentence(3 + rand.IntN(6))
			content := loremParagraphs(1+rand.IntN(5), minWords, maxWords)
			createdAt := time.Now().UTC().AddDate(0, 0, -rand.IntN(366))

			if _, err := posts.CreateDated(ctx, u.ID, title, content, createdAt); err != nil {
				return err
			}
			total++
		}
	}

	fmt.Printf("Created %d posts for test users.\n", total)
	return nil
}

func runSeedCleanup() error {
	db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	resPosts, err := tx.ExecContext(ctx, `
		DELETE FROM posts
		WHERE user_id IN (SELECT id FROM users WHERE username LIKE 'testuser%')
	`)
	if err != nil {
		return err
	}
	resUsers, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username LIKE 'testuser%'`)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	deletedPosts, _ := resPosts.RowsAffected()
	deletedUsers, _ := resUsers.RowsAffected()
	fmt.Printf("Deleted %d posts and %d test users.\n", deletedPosts, deletedUsers)
	return nil
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"in", "reprehenderit", "voluptate", "velit", "esse", "cillum", "fugiat",
	"nulla", "pariatur", "excepteur", "sint", "occaecat", "cupidatat",
}

func loremSentence(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = loremWords[rand.IntN(len(loremWords))]
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func loremParagraphs(n, minWords, maxWords int) string {
	if maxWords < minWords {
		maxWords = minWords
	}
	paras := make([]string, n)
	for i := range paras {
		var b strings.Builder
		words := minWords + rand.IntN(maxWords-minWords+1)
		for words > 0 {
			sentence := 4 + rand.IntN(9)
			if sentence > words {
				sentence = words
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(loremSentence(sentence))
			words -= sentence
		}
		paras[i] = b.String()
	}
	return strings.Join(paras, "\n")
}
