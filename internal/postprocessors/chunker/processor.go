// Package chunker splits normalised text into overlapping token windows
// sized for the embedding model context limit.
package chunker

import (
	"context"
	"strings"
	"unicode"

	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
)

// DefaultMaxTokens is the default window size cap in tokens.
const DefaultMaxTokens = 300

// DefaultOverlapTokens is the default trailing-context window carried into
// the next chunk.
const DefaultOverlapTokens = 50

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits text greedily on paragraph and sentence boundaries up
// to maxTokens, hard-splitting oversized paragraphs at the token limit.
// Consecutive chunks overlap by overlapTokens tokens of trailing context;
// the overlap spends part of the window, so a chunk's full text — the
// string handed to the embedding model — never exceeds maxTokens tokens.
//
// A token is a maximal run of non-space characters together with the
// whitespace that follows it, so token spans tile the input exactly and
// concatenating the chunks' non-overlap spans reproduces the input.
type Processor struct {
	maxTokens     int
	overlapTokens int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxTokens sets the window size cap in tokens.
func WithMaxTokens(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxTokens = n
		}
	}
}

// WithOverlapTokens sets the overlap between consecutive chunks in tokens.
func WithOverlapTokens(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlapTokens = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxTokens:     DefaultMaxTokens,
		overlapTokens: DefaultOverlapTokens,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for progress within a window.
	if p.overlapTokens >= p.maxTokens {
		p.overlapTokens = p.maxTokens / 4
	}

	return p
}

// span is a token's byte range within the input text.
type span struct {
	start int
	end   int

	// paragraph marks a token whose trailing whitespace contains a blank
	// line; sentence marks a token whose word ends a sentence.
	paragraph bool
	sentence  bool
}

// Chunk splits text into chunks tagged with the given content hash.
// Empty input produces no chunks.
func (p *Processor) Chunk(_ context.Context, contentHash, text string) ([]domain.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	tokens := tokenize(text)
	estimated := len(tokens)/(p.maxTokens-p.overlapTokens) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	prevStart := 0
	for i := 0; i < len(tokens); {
		ovStart := i - p.overlapTokens
		if ovStart < prevStart {
			ovStart = prevStart
		}
		if len(chunks) == 0 {
			ovStart = i
		}

		// The overlap prefix counts against the window, so overlap plus
		// own span never exceeds maxTokens.
		j := p.cut(tokens, i, p.maxTokens-(i-ovStart))

		chunks = append(chunks, domain.Chunk{
			ContentHash: contentHash,
			Index:       len(chunks),
			Text:        text[tokens[ovStart].start:tokens[j-1].end],
			Overlap:     tokens[i].start - tokens[ovStart].start,
		})

		prevStart = i
		i = j
	}

	return chunks, nil
}

// cut returns the exclusive token index ending the chunk whose own span
// starts at i and may spend budget tokens. It prefers the last paragraph
// boundary in the window, then the last sentence boundary, then a hard
// split at the token limit.
func (p *Processor) cut(tokens []span, i, budget int) int {
	end := i + budget
	if end >= len(tokens) {
		return len(tokens)
	}

	// Only look back through the trailing half of the window, so short
	// boundary-free stretches still fill their chunk.
	floor := i + budget/2
	if floor < i+1 {
		floor = i + 1
	}

	for j := end; j > floor; j-- {
		if tokens[j-1].paragraph {
			return j
		}
	}
	for j := end; j > floor; j-- {
		if tokens[j-1].sentence {
			return j
		}
	}
	return end
}

// tokenize splits text into spans that tile it completely. Each span is a
// non-space run plus its trailing whitespace; leading whitespace attaches
// to the first span.
func tokenize(text string) []span {
	var tokens []span

	i := 0
	for i < len(text) {
		start := i

		// Leading whitespace belongs to the first token only.
		if start == 0 {
			for i < len(text) && isSpace(text[i]) {
				i++
			}
		}

		wordEnd := i
		for i < len(text) && !isSpace(text[i]) {
			i++
			wordEnd = i
		}
		spaceStart := i
		for i < len(text) && isSpace(text[i]) {
			i++
		}

		tokens = append(tokens, span{
			start:     start,
			end:       i,
			paragraph: strings.Count(text[spaceStart:i], "\n") >= 2,
			sentence:  endsSentence(text[start:wordEnd]),
		})
	}

	return tokens
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// endsSentence reports whether a word terminates a sentence, tolerating
// trailing quotes and brackets.
func endsSentence(word string) bool {
	runes := []rune(word)
	for k := len(runes) - 1; k >= 0; k-- {
		switch r := runes[k]; {
		case r == '.' || r == '!' || r == '?':
			return true
		case r == '"' || r == '\'' || r == ')' || r == ']' || unicode.In(r, unicode.Pf):
			continue
		default:
			return false
		}
	}
	return false
}
