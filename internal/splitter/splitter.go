// Package splitter resizes structural units that exceed the chunk size
// bound. A cascade of structural split strategies is tried in order; the
// first one that finds more than one piece wins, and a generic fixed-size
// windowed splitter is the terminal fallback.
package splitter

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/medregintel/segmenter/internal/segment"
)

const (
	// MaxChunkSize is the upper bound for a single segment. Units above
	// it are re-split at structural boundaries.
	MaxChunkSize = 2000

	// MinChunkSize is the lower bound below which fragments are not
	// worth emitting on their own.
	MinChunkSize = 200

	// FallbackChunkSize and FallbackChunkOverlap drive the generic
	// windowed splitter used when no structure is recognizable.
	FallbackChunkSize    = 800
	FallbackChunkOverlap = 200
)

// SplitFunc cuts a unit into candidate pieces. Returning the input as a
// single piece means the strategy found no split points.
type SplitFunc func(text string) []string

var (
	numberedParen = regexp.MustCompile(`(^|\n)\(\d+\)\s`)
	numberedPlain = regexp.MustCompile(`\n\d+\s+[A-ZÄÖÜ]`)
	lettered      = regexp.MustCompile(`\n[a-z][.)]\s`)
	blankLine     = regexp.MustCompile(`\n\n`)
)

// Strategies is the ordered cascade tried by Oversize. New dialects can
// extend it without touching the existing strategies' behavior.
var Strategies = []SplitFunc{
	// Numbered sub-paragraphs: (1), (2), ... at line start.
	func(text string) []string { return SplitBefore(numberedParen, text) },
	// Plain numbers at line start as used by the Swiss style: "1 Text".
	func(text string) []string { return SplitBefore(numberedPlain, text) },
	// Lettered items: a), b. at line start.
	func(text string) []string { return SplitBefore(lettered, text) },
	// Blank-line paragraph boundaries. The separator stays with the
	// following piece like the other strategies, so paragraphs packed
	// into one chunk keep their boundary.
	func(text string) []string { return SplitBefore(blankLine, text) },
}

// SplitBefore cuts text in front of every match of re, keeping the
// matched boundary with the following piece so that concatenating the
// pieces reconstructs the input.
func SplitBefore(re *regexp.Regexp, text string) []string {
	locs := re.FindAllStringIndex(text, -1)
	parts := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] == 0 {
			continue
		}
		parts = append(parts, text[prev:loc[0]])
		prev = loc[0]
	}
	return append(parts, text[prev:])
}

// Oversize re-splits a unit that exceeds MaxChunkSize. header is the
// unit's structural locator (e.g. "Artikel 10 – Pflichten der
// Hersteller"); every chunk after the first gets it re-prepended so each
// sub-segment remains legible standalone. Sub-segment metadata is a copy
// of meta plus part/total indices. Oversize never fails: units with no
// structural split points at all go through the windowed fallback.
func Oversize(text, header string, meta segment.Metadata) []segment.Segment {
	var pieces []string
	for _, strategy := range Strategies {
		if parts := strategy(text); len(parts) > 1 {
			pieces = parts
			break
		}
	}

	if pieces == nil {
		// No structural boundary anywhere in the unit.
		var segs []segment.Segment
		for _, w := range Window(text, MaxChunkSize, FallbackChunkOverlap) {
			segs = append(segs, segment.Segment{
				Content: header + "\n" + w,
				Meta:    meta,
			})
		}
		return segs
	}

	// Greedily pack consecutive pieces while the running total stays
	// under the bound.
	var chunks []string
	var current string
	for _, piece := range pieces {
		if len(current)+len(piece) > MaxChunkSize && current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
			current = piece
		} else {
			current += piece
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	var segs []segment.Segment
	for i, chunk := range chunks {
		partMeta := meta.WithPart(i+1, len(chunks))
		content := chunk
		if i > 0 {
			content = header + "\n" + chunk
		}

		// A packed chunk can still be oversized when a single piece
		// exceeds the bound on its own.
		if len(content) > MaxChunkSize*3/2 {
			for _, w := range Window(content, MaxChunkSize, FallbackChunkOverlap) {
				segs = append(segs, segment.Segment{Content: w, Meta: partMeta})
			}
			continue
		}
		segs = append(segs, segment.Segment{Content: content, Meta: partMeta})
	}
	return segs
}

// Window splits text into fixed-size windows of at most size characters
// with roughly overlap characters shared between consecutive windows.
// Cuts prefer whitespace so words stay intact. Window always covers the
// whole input and always makes progress.
func Window(text string, size, overlap int) []string {
	if size <= 0 {
		size = FallbackChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 4
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	var out []string
	start := 0
	for start < n {
		end := start + size
		if end >= n {
			if piece := strings.TrimSpace(string(runes[start:])); piece != "" {
				out = append(out, piece)
			}
			break
		}

		// Back off to the nearest whitespace, but never below half a
		// window so pathological inputs cannot stall.
		cut := end
		for cut > start+size/2 && !unicode.IsSpace(runes[cut]) {
			cut--
		}
		if cut == start+size/2 {
			cut = end
		}

		if piece := strings.TrimSpace(string(runes[start:cut])); piece != "" {
			out = append(out, piece)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return out
}
