package commands

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

var passLength int

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var genpassCmd = &cobra.Command{
	Use:   "genpass",
	Short: "Generate a random strong password",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := generatePassword(passLength)
		if err != nil {
			return err
		}
		fmt.Println(password)
		return nil
	},
}

func init() {
	genpassCmd.Flags().IntVar(&passLength, "length", 16, "Password length")
	rootCmd.AddCommand(genpassCmd)
}

// generatePassword draws length characters from the alphabet using
// crypto/rand.
func generatePassword(length int) (string, error) {
	space := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, space)
		if err != nil {
			return "", fmt.Errorf("genpass: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
