// Package game implements the number guessing game.
package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// Console messages.
const (
	promptGuess   = "Enter your guess: "
	msgInvalid    = "❌ Invalid input. Please enter a valid integer."
	msgOutOfRange = "⚠️ Please enter a number between %d and %d."
	msgWelcome    = "🎉 Welcome to the Number Guessing Game!"
	msgRules      = "You have %d attempts to guess the number between %d and %d."
	msgTooLow     = "⬇️ Too low!"
	msgTooHigh    = "⬆️ Too high!"
	msgCorrect    = "✅ Correct! You guessed the number in %d attempts."
	msgOutOfTurns = "❗ Out of attempts. The number was %d."
)

// Config bounds one game.
type Config struct {
	// Min and Max are the inclusive range of the target and of valid guesses.
	Min int
	Max int

	// MaxAttempts is the number of valid guesses allowed.
	MaxAttempts int
}

// DefaultConfig returns a 1..100 game with ten attempts.
func DefaultConfig() Config {
	return Config{Min: 1, Max: 100, MaxAttempts: 10}
}

// Validate checks the range and attempt count.
func (c Config) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("min %d is greater than max %d: %w", c.Min, c.Max, domain.ErrInvalidInput)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("attempts must be positive: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Result is the outcome of one game.
type Result struct {
	Won      bool
	Attempts int
	Target   int
}

// ReadGuess prompts until a line holds an integer within [lo, hi].
// Invalid and out-of-range lines are answered with a corrective message and
// never end the loop. It returns io.EOF when input runs out.
func ReadGuess(in *bufio.Scanner, out io.Writer, lo, hi int) (int, error) {
	for {
		fmt.Fprint(out, promptGuess)
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}

		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			fmt.Fprintln(out, msgInvalid)
			continue
		}
		// An integer too large for int is still an integer, just out of range.
		if err != nil || n < lo || n > hi {
			fmt.Fprintf(out, msgOutOfRange+"\n", lo, hi)
			continue
		}
		return n, nil
	}
}

// Play runs one game against a target drawn uniformly from [cfg.Min, cfg.Max].
// Running out of input ends the game early with io.EOF.
func Play(in io.Reader, out io.Writer, rng *rand.Rand, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{Target: draw(rng, cfg.Min, cfg.Max)}
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, msgWelcome)
	fmt.Fprintf(out, msgRules+"\n", cfg.MaxAttempts, cfg.Min, cfg.Max)

	for result.Attempts < cfg.MaxAttempts {
		guess, err := ReadGuess(scanner, out, cfg.Min, cfg.Max)
		if err != nil {
			return result, err
		}
		result.Attempts++

		switch {
		case guess < result.Target:
			fmt.Fprintln(out, msgTooLow)
		case guess > result.Target:
			fmt.Fprintln(out, msgTooHigh)
		default:
			result.Won = true
			fmt.Fprintf(out, msgCorrect+"\n", result.Attempts)
			return result, nil
		}
	}

	fmt.Fprintf(out, msgOutOfTurns+"\n", result.Target)
	return result, nil
}

// draw returns a uniform value in [lo, hi]. The width is taken in uint64 so
// bounds spanning the whole int range do not overflow.
func draw(rng *rand.Rand, lo, hi int) int {
	span := uint64(hi) - uint64(lo)
	if span == math.MaxUint64 {
		return int(rng.Uint64())
	}
	return int(uint64(lo) + rng.Uint64N(span+1))
}
