package answer

import (
	"fmt"
	"time"
)

// Style selects how the best match is surfaced in the answer text.
type Style string

const (
	// StyleFull answers with the full content of the best match.
	StyleFull Style = "full"
	// StyleSnippet answers with a truncated prefix of the best match and,
	// when several documents matched, appends the disambiguation prompt.
	StyleSnippet Style = "snippet"
)

// Default answer settings.
const (
	DefaultModelLabel           = "local-search"
	DefaultSnippetLength        = 120
	DefaultMaxSuggestions       = 6
	DefaultNotFoundMessage      = "관련 문서를 찾지 못했습니다."
	DefaultEmptyMessage         = "질문이 비어있습니다."
	DefaultDisambiguationPrompt = "여러 문서가 관련되어 있습니다. 어떤 항목을 문의하시는지 알려주세요."
)

// DefaultCategories are the fallback category labels.
func DefaultCategories() []string {
	return []string{"계정", "결제", "배송", "고객센터", "오류"}
}

// Options tune answer assembly.
type Options struct {
	Style Style
	// SnippetLength is the citation snippet length in runes; 0 keeps the full content.
	SnippetLength        int
	ModelLabel           string
	MaxSuggestions       int
	Categories           []string
	NotFoundMessage      string
	EmptyMessage         string
	DisambiguationPrompt string
	// LoadTimeout bounds the document source load; 0 disables the timeout.
	LoadTimeout time.Duration
}

// DefaultOptions returns the stock answer settings.
func DefaultOptions() Options {
	return Options{
		Style:                StyleFull,
		SnippetLength:        DefaultSnippetLength,
		ModelLabel:           DefaultModelLabel,
		MaxSuggestions:       DefaultMaxSuggestions,
		Categories:           DefaultCategories(),
		NotFoundMessage:      DefaultNotFoundMessage,
		EmptyMessage:         DefaultEmptyMessage,
		DisambiguationPrompt: DefaultDisambiguationPrompt,
	}
}

// withDefaults fills empty fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Style == "" {
		o.Style = d.Style
	}
	if o.SnippetLength < 0 {
		o.SnippetLength = 0
	}
	if o.ModelLabel == "" {
		o.ModelLabel = d.ModelLabel
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = d.MaxSuggestions
	}
	if len(o.Categories) == 0 {
		o.Categories = d.Categories
	}
	if o.NotFoundMessage == "" {
		o.NotFoundMessage = d.NotFoundMessage
	}
	if o.EmptyMessage == "" {
		o.EmptyMessage = d.EmptyMessage
	}
	if o.DisambiguationPrompt == "" {
		o.DisambiguationPrompt = d.DisambiguationPrompt
	}
	return o
}

// ParseStyle converts a config value to a Style. Empty means StyleFull.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case "":
		return StyleFull, nil
	case StyleFull, StyleSnippet:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown answer style %q (want %q or %q)", s, StyleFull, StyleSnippet)
	}
}
