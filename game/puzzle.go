package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var ErrNoWords = errors.New("word service returned no words")

// shuffleLetters splits word into its letters in a random order.
func shuffleLetters(word string) []string {
	letters := strings.Split(word, "")
	rand.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return letters
}

func pickWord(words []string) string {
	return words[rand.Intn(len(words))]
}

// buildRound fetches a random word of the given length and then the
// solutions for its letters. The second call depends on the first.
func buildRound(ctx context.Context, source WordSource, length int) (RoundData, error) {
	words, err := source.FetchWords(ctx, length)
	if err != nil {
		return RoundData{}, fmt.Errorf("fetching words: %w", err)
	}
	if len(words) == 0 {
		return RoundData{}, ErrNoWords
	}
	word := pickWord(words)
	solutions, err := source.FetchAnagramSolutions(ctx, word)
	if err != nil {
		return RoundData{}, fmt.Errorf("fetching solutions for %q: %w", word, err)
	}
	if solutions == nil {
		solutions = []string{}
	}
	return RoundData{Letters: shuffleLetters(word), Solutions: solutions}, nil
}
