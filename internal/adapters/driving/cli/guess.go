package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/game"
)

var (
	guessMin      int
	guessMax      int
	guessAttempts int
	guessSeed     uint64
)

var guessCmd = &cobra.Command{
	Use:   "guess",
	Short: "Play the number guessing game",
	Args:  cobra.NoArgs,
	RunE:  runGuess,
}

func init() {
	defaults := game.DefaultConfig()
	guessCmd.Flags().IntVar(&guessMin, "min", defaults.Min, "smallest possible number")
	guessCmd.Flags().IntVar(&guessMax, "max", defaults.Max, "largest possible number")
	guessCmd.Flags().IntVar(&guessAttempts, "attempts", defaults.MaxAttempts, "number of guesses allowed")
	guessCmd.Flags().Uint64Var(&guessSeed, "seed", 0, "random seed (0 = random)")
	rootCmd.AddCommand(guessCmd)
}

func runGuess(cmd *cobra.Command, _ []string) error {
	seed := guessSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	cfg := game.Config{Min: guessMin, Max: guessMax, MaxAttempts: guessAttempts}
	_, err := game.Play(cmd.InOrStdin(), cmd.OutOrStdout(), rng, cfg)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}
	return err
}
