package wordbank

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

// MinWords is the number of words dealt at the start of every game.
const MinWords = 8

//go:embed words.yml
var defaultBank []byte

type file struct {
	Words []string `yaml:"words"`
}

// Default returns the built-in word list.
func Default() ([]string, error) {
	return Parse(defaultBank)
}

// Load reads a word bank from a YAML file. An empty path selects the
// built-in list.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word bank %s: %w", path, err)
	}

	words, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid word bank %s: %w", path, err)
	}

	return words, nil
}

// Parse decodes a word bank document, trimming entries and dropping blanks
// and duplicates.
func Parse(data []byte) ([]string, error) {
	var bank file
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to decode word bank: %w", err)
	}

	seen := make(map[string]struct{}, len(bank.Words))
	words := make([]string, 0, len(bank.Words))

	for _, word := range bank.Words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		key := strings.ToLower(word)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		words = append(words, word)
	}

	if len(words) < MinWords {
		return nil, fmt.Errorf("%w: need %d, got %d", apperror.ErrNotEnoughWords, MinWords, len(words))
	}

	return words, nil
}
