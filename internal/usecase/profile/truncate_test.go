package profile

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// wordTokenizer treats every space-separated word as one token.
type wordTokenizer struct{ words []string }

func (w *wordTokenizer) Encode(text string, _, _ []string) []int {
	w.words = strings.Fields(text)
	ids := make([]int, len(w.words))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (w *wordTokenizer) Decode(tokens []int) string {
	out := make([]string, len(tokens))
	for i, id := range tokens {
		out[i] = w.words[id]
	}
	return strings.Join(out, " ")
}

func TestTruncator_CutsAtTokenLimit(t *testing.T) {
	tr := NewTruncator(3, zap.NewNop())
	tr.load = func() (tokenizer, error) { return &wordTokenizer{}, nil }

	if got := tr.Truncate("one two three four five"); got != "one two three" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := tr.Truncate("short text"); got != "short text" {
		t.Errorf("text under the limit must pass through, got %q", got)
	}
}

func TestTruncator_RuneFallback(t *testing.T) {
	tr := NewTruncator(2, zap.NewNop())
	tr.load = func() (tokenizer, error) { return nil, errors.New("offline") }

	got := tr.Truncate("абвгдежзийклмн")
	if got != "абвгдежз" {
		t.Errorf("expected 8 runes, got %q", got)
	}
}

func TestTruncator_Disabled(t *testing.T) {
	var nilTr *Truncator
	if nilTr.Truncate("abc") != "abc" {
		t.Error("nil truncator must pass text through")
	}
	tr := NewTruncator(0, zap.NewNop())
	tr.load = func() (tokenizer, error) {
		t.Fatal("encoding must not load when disabled")
		return nil, nil
	}
	if tr.Truncate("abc") != "abc" {
		t.Error("zero limit must pass text through")
	}
}
