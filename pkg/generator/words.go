package generator

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed words.json
var embeddedWords []byte

// defaultWords parses the embedded dictionary once per process
var defaultWords = sync.OnceValues(func() ([]string, error) {
	return parseWords(embeddedWords)
})

// LoadWords reads a word dictionary. The file may hold a JSON array of
// strings or one word per line; blank lines and lines starting with # are
// skipped. An empty path returns the embedded dictionary.
func LoadWords(path string) ([]string, error) {
	if path == "" {
		words, err := defaultWords()
		if err != nil {
			return nil, fmt.Errorf("parsing embedded words: %w", err)
		}
		return words, nil
	}

	log.Debug().Str("path", path).Msg("Loading word list")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	words, err := parseWords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse word list %s: %w", path, err)
	}

	log.Debug().Int("words", len(words)).Msg("Word list loaded")
	return words, nil
}

func parseWords(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var words []string
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, err
		}
		return clean(words), nil
	}

	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return clean(words), nil
}

func clean(words []string) []string {
	out := words[:0]
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
