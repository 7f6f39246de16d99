// Package parser provides text normalization, spoken-number extraction,
// and fuzzy matching for voice command dispatch.
//
// Number extraction understands digit runs and number words, including
// homophones a speech model commonly substitutes ("to" for 2, "for" for 4,
// "ate" for 8). Malformed input never produces an error; it degrades to
// an empty extraction.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultFuzzyThreshold is the minimum similarity for IsFuzzyMatch.
const DefaultFuzzyThreshold = 0.8

// DefaultIgnoredWords are politeness fillers dropped before dispatch.
var DefaultIgnoredWords = []string{"thank", "you", "thanks", "please"}

var (
	digitRuns    = regexp.MustCompile(`\d+`)
	nonWordChars = regexp.MustCompile(`[^\w\s\-']`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// Parser extracts numbers and normalizes transcribed text.
type Parser struct {
	numberWords    map[string]int
	ignoredWords   map[string]bool
	fuzzyThreshold float64
}

// Option configures a Parser.
type Option func(*Parser)

// WithNumberWords replaces the homophone dictionary.
func WithNumberWords(words map[string]int) Option {
	return func(p *Parser) {
		if len(words) > 0 {
			p.numberWords = words
		}
	}
}

// WithIgnoredWords replaces the ignored word set.
func WithIgnoredWords(words []string) Option {
	return func(p *Parser) {
		p.ignoredWords = make(map[string]bool, len(words))
		for _, w := range words {
			p.ignoredWords[strings.ToLower(w)] = true
		}
	}
}

// WithFuzzyThreshold sets the IsFuzzyMatch threshold.
func WithFuzzyThreshold(threshold float64) Option {
	return func(p *Parser) {
		if threshold > 0 && threshold <= 1 {
			p.fuzzyThreshold = threshold
		}
	}
}

// New creates a Parser with the built-in homophone dictionary and defaults.
func New(opts ...Option) *Parser {
	p := &Parser{
		numberWords:    fallbackNumberWords(),
		fuzzyThreshold: DefaultFuzzyThreshold,
	}
	WithIgnoredWords(DefaultIgnoredWords)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractNumbers returns all numbers found in text. Digit runs always win
// over number words. Word extraction merges tens with a following unit
// ("sixty nine" becomes 69) and skips unknown tokens.
func (p *Parser) ExtractNumbers(text string) []int {
	if runs := digitRuns.FindAllString(text, -1); len(runs) > 0 {
		numbers := make([]int, 0, len(runs))
		for _, run := range runs {
			n, err := strconv.Atoi(run)
			if err != nil {
				continue
			}
			numbers = append(numbers, n)
		}
		return numbers
	}

	var numbers []int
	words := strings.Fields(strings.ToLower(text))
	for i := 0; i < len(words); {
		num, ok := p.numberWords[words[i]]
		if !ok {
			i++
			continue
		}
		// Compound tens + units, e.g. "sixty" "nine" -> 69
		if num >= 20 && num <= 90 && num%10 == 0 && i+1 < len(words) {
			if unit, ok := p.numberWords[words[i+1]]; ok && unit >= 1 && unit <= 9 {
				numbers = append(numbers, num+unit)
				i += 2
				continue
			}
		}
		numbers = append(numbers, num)
		i++
	}
	return numbers
}

// ContainsNumbers reports whether text has any digit or number word.
func (p *Parser) ContainsNumbers(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := p.numberWords[word]; ok {
			return true
		}
	}
	return false
}

// IsLoneNumber reports whether the entire trimmed text is a single number.
func (p *Parser) IsLoneNumber(text string) bool {
	_, ok := p.parseLone(text)
	return ok
}

// ParseNumber parses text that is exactly one number (digit run or word).
// The second return value is false when text is not a lone number.
func (p *Parser) ParseNumber(text string) (int, bool) {
	return p.parseLone(text)
}

func (p *Parser) parseLone(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil && !strings.ContainsAny(text, "+-") {
		return n, true
	}
	if n, ok := p.numberWords[strings.ToLower(text)]; ok {
		return n, true
	}
	return 0, false
}

// NormalizeText lowercases, strips punctuation except hyphen and apostrophe,
// and collapses whitespace. Normalizing twice yields the same result as once.
func (p *Parser) NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = nonWordChars.ReplaceAllString(text, "")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FilterIgnoredWords drops tokens whose cleaned form is in the ignored set.
func (p *Parser) FilterIgnoredWords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		clean := strings.ToLower(strings.TrimRight(word, ".,!?;:"))
		if p.ignoredWords[clean] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// FuzzyMatch returns the similarity of two strings in [0,1] using a
// longest-common-subsequence alignment ratio. When normalize is true both
// inputs are normalized first.
func (p *Parser) FuzzyMatch(a, b string, normalize bool) float64 {
	if normalize {
		a = p.NormalizeText(a)
		b = p.NormalizeText(b)
	}
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := lcsLength([]rune(a), []rune(b))
	return 2.0 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// IsFuzzyMatch reports whether two strings match above the configured threshold.
func (p *Parser) IsFuzzyMatch(a, b string, normalize bool) bool {
	return p.FuzzyMatch(a, b, normalize) >= p.fuzzyThreshold
}

// lcsLength computes the longest common subsequence length with a
// two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
