package diet

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits free text into sentences.
type Segmenter interface {
	Sentences(text string) []string
}

// SegmenterFunc adapts a function to Segmenter.
type SegmenterFunc func(text string) []string

// Sentences implements Segmenter.
func (f SegmenterFunc) Sentences(text string) []string { return f(text) }

// SentenceSegmenter wraps the English punkt tokenizer. Build it once at
// startup; it is read-only afterwards and safe for concurrent use.
type SentenceSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceSegmenter loads the bundled English training data.
func NewSentenceSegmenter() (*SentenceSegmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load english sentence tokenizer: %w", err)
	}
	return &SentenceSegmenter{tokenizer: tokenizer}, nil
}

// Sentences implements Segmenter. Whitespace inside a sentence, including
// line breaks left by PDF extraction, is collapsed to single spaces.
func (s *SentenceSegmenter) Sentences(text string) []string {
	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if clean := strings.Join(strings.Fields(sent.Text), " "); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
