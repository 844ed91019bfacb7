// Package textnorm turns free text into a canonical bag-of-words string.
//
// Pipeline order
// 1 UTF-8 repair, drop invalid bytes
// 2 Unicode NFKC normalization, case folding, combining marks removed
// 3 every rune outside the Cyrillic and Latin letter ranges becomes a space, ё folds to е
// 4 split on whitespace
// 5 each token reduced to its stem (snowball, applied until stable)
// 6 stems shorter than MinTokenLen or on the stopword list are dropped
// 7 survivors joined with single spaces in original order
//
// Normalize is deterministic, stateless and idempotent.
package textnorm

import (
	"bufio"
	"embed"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/russian"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLen is the shortest stem (in runes) that survives filtering.
const MinTokenLen = 3

// maxStemPasses bounds the stem-until-stable loop.
const maxStemPasses = 8

//go:embed stopwords/*.txt
var stopwordFS embed.FS

// pool of fresh transformer chains; order matters
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
		)
	},
}

// Normalizer is safe for concurrent use.
type Normalizer struct {
	stop map[string]struct{}
}

// New builds a Normalizer with the embedded Russian and English stopword lists.
func New() *Normalizer {
	var words []string
	for _, name := range []string{"stopwords/ru.txt", "stopwords/en.txt"} {
		words = append(words, mustReadList(name)...)
	}
	return NewWithStopwords(words)
}

// NewWithStopwords builds a Normalizer with a custom stopword list.
// Each word is registered both as written and as its stem, so inflected
// stopwords are caught after stemming.
func NewWithStopwords(words []string) *Normalizer {
	stop := make(map[string]struct{}, len(words)*2)
	for _, w := range words {
		w = foldRunes(fold(w))
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		stop[w] = struct{}{}
		stop[lemma(w)] = struct{}{}
	}
	return &Normalizer{stop: stop}
}

// Normalize returns the canonical bag-of-words form of text.
// Empty or fully filtered input yields "".
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	tokens := strings.Fields(foldRunes(fold(text)))
	kept := tokens[:0]
	for _, tok := range tokens {
		l := lemma(tok)
		if utf8.RuneCountInString(l) < MinTokenLen {
			continue
		}
		if _, ok := n.stop[l]; ok {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, " ")
}

// Tokens returns the normalized tokens of text.
func (n *Normalizer) Tokens(text string) []string {
	return strings.Fields(n.Normalize(text))
}

// fold runs the pooled Unicode transform chain.
func fold(s string) string {
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// foldRunes keeps Cyrillic and Latin letters, maps ё to е and turns everything else into spaces.
func foldRunes(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 'ё':
			return 'е'
		case unicode.IsLetter(r) && (unicode.Is(unicode.Cyrillic, r) || unicode.Is(unicode.Latin, r)):
			return r
		default:
			return ' '
		}
	}, s)
}

// lemma reduces a folded token to its stem so that lemma(lemma(x)) == lemma(x).
func lemma(tok string) string {
	if hasCyrillic(tok) {
		return stemUntilStable(tok, russian.Stem)
	}
	return stemUntilStable(tok, english.Stem)
}

// stemUntilStable re-stems until a fixed point. A token still changing after
// maxStemPasses is returned as is, which a second call reproduces.
func stemUntilStable(tok string, stem func(string, bool) string) string {
	cur := tok
	for range maxStemPasses {
		next := stem(cur, false)
		if next == cur || next == "" {
			return cur
		}
		cur = next
	}
	return tok
}

func hasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

func mustReadList(name string) []string {
	f, err := stopwordFS.Open(name)
	if err != nil {
		panic("textnorm: missing embedded stopword list " + name)
	}
	defer func() { _ = f.Close() }()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}
