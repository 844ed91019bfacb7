package profile

import (
	"strings"
	"sync"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// approxRunesPerToken is used when no BPE encoding could be loaded.
const approxRunesPerToken = 4

type tokenizer interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// Truncator caps profile text at the embedding model's input window.
type Truncator struct {
	max    int
	load   func() (tokenizer, error)
	once   sync.Once
	enc    tokenizer
	logger *zap.Logger
}

// NewTruncator creates a truncator for maxTokens. Zero disables truncation.
// The cl100k_base encoding is loaded on first use.
func NewTruncator(maxTokens int, logger *zap.Logger) *Truncator {
	return &Truncator{
		max: maxTokens,
		load: func() (tokenizer, error) {
			return tiktoken.GetEncoding("cl100k_base")
		},
		logger: logger,
	}
}

// Truncate returns text cut to at most max tokens.
func (t *Truncator) Truncate(text string) string {
	if t == nil || t.max <= 0 || text == "" {
		return text
	}
	t.once.Do(func() {
		enc, err := t.load()
		if err != nil {
			t.logger.Warn("Token encoding unavailable, truncating by runes", zap.Error(err))
			return
		}
		t.enc = enc
	})

	if t.enc == nil {
		limit := t.max * approxRunesPerToken
		if utf8.RuneCountInString(text) <= limit {
			return text
		}
		return string([]rune(text)[:limit])
	}

	toks := t.enc.Encode(text, nil, nil)
	if len(toks) <= t.max {
		return text
	}
	// A cut may split a multi-byte rune across tokens.
	return strings.ToValidUTF8(t.enc.Decode(toks[:t.max]), "")
}
