// Package textproc post-processes transcribed dictation: spoken
// punctuation, custom vocabulary, and command-word detection.
package textproc

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/voxctl/voxctl/internal/config"
)

var (
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([.,!?;:])`)
	multiSpace       = regexp.MustCompile(`[ \t]+`)
	spaceBeforeNL    = regexp.MustCompile(`[ \t]+\n`)
	spaceAfterNL     = regexp.MustCompile(`\n[ \t]+`)
)

type vocabEntry struct {
	pattern     *regexp.Regexp
	replacement string
}

// Processor rewrites transcribed text before it is typed. It replaces
// spoken punctuation ("period" -> "."), applies custom vocabulary, and
// intercepts command words ("scratch that" -> undo_last).
type Processor struct {
	punctuation        map[string]string
	punctuationPattern *regexp.Regexp
	punctuationEnabled bool
	vocabulary         []vocabEntry
	commandWords       map[string]string

	mu       sync.Mutex
	lastText string
}

// New builds a processor from the text_processing configuration tables.
func New(cfg *config.Config) *Processor {
	p := &Processor{
		punctuation:        map[string]string{},
		punctuationEnabled: cfg.GetBool(true, "text_processing", "punctuation_commands"),
		commandWords:       map[string]string{},
	}

	for word, mark := range cfg.GetStringMap("text_processing", "punctuation_map") {
		p.punctuation[strings.ToLower(word)] = mark
	}
	p.punctuationPattern = wordAlternation(keys(p.punctuation))

	// Longer phrases substitute first so "pull request" beats "pull".
	vocab := cfg.GetStringMap("text_processing", "custom_vocabulary")
	phrases := keys(vocab)
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	for _, phrase := range phrases {
		p.vocabulary = append(p.vocabulary, vocabEntry{
			pattern:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`),
			replacement: vocab[phrase],
		})
	}

	for phrase, action := range cfg.GetStringMap("text_processing", "command_words") {
		p.commandWords[strings.ToLower(strings.TrimSpace(phrase))] = action
	}
	return p
}

// Process rewrites text for typing. When the whole utterance is a
// command word, it returns the mapped action instead of text; exactly
// one of the two return values is non-empty for non-empty input.
func (p *Processor) Process(text string) (typed string, action string) {
	if text == "" {
		return "", ""
	}

	if cmd, ok := p.commandWords[strings.ToLower(strings.TrimSpace(text))]; ok {
		return "", cmd
	}

	if p.punctuationEnabled {
		text = p.applyPunctuation(text)
	}
	for _, entry := range p.vocabulary {
		text = entry.pattern.ReplaceAllString(text, entry.replacement)
	}

	p.mu.Lock()
	p.lastText = text
	p.mu.Unlock()
	return text, ""
}

// LastTextLength returns the length of the most recent typed text, for
// undo_last.
func (p *Processor) LastTextLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lastText)
}

// LastText returns the most recent typed text.
func (p *Processor) LastText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastText
}

func (p *Processor) applyPunctuation(text string) string {
	if p.punctuationPattern != nil {
		text = p.punctuationPattern.ReplaceAllStringFunc(text, func(word string) string {
			if mark, ok := p.punctuation[strings.ToLower(word)]; ok {
				return mark
			}
			return word
		})
	}

	// Tidy spacing without touching newlines.
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforeNL.ReplaceAllString(text, "\n")
	text = spaceAfterNL.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// wordAlternation compiles `\b(a|b|...)\b` with longer words first so
// "period" wins over a hypothetical "per". Returns nil for no words.
func wordAlternation(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sort.Slice(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
