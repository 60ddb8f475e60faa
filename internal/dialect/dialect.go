// Package dialect locates structural units in regulatory documents. Each
// supported jurisdiction has its own boundary grammar (recitals, articles,
// paragraphs, regulations) expressed as a marker pattern plus terminator
// patterns, a hierarchical context grammar (chapters or parts), and a
// formatting convention for the assembled segment content.
package dialect

import (
	"regexp"
	"sort"
	"strings"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
	"github.com/medregintel/segmenter/internal/splitter"
)

// Parser turns an extracted document into segments for one dialect.
type Parser interface {
	Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment
}

var registry = map[string]Parser{
	classify.KeyEUMDR:    &EUMDRParser{},
	classify.KeyDEMPDG:   &MPDGParser{},
	classify.KeyCHMepV:   &MepVParser{},
	classify.KeyUKMDR:    &UKMDRParser{},
	classify.KeyGuidance: &GuidanceParser{},
}

// ForKey returns the parser registered for a classifier key. Unknown keys
// resolve to the guidance fallback so dispatch never fails.
func ForKey(key string) Parser {
	if p, ok := registry[key]; ok {
		return p
	}
	return &GuidanceParser{}
}

// baseMetadata fills the document-level fields shared by every segment of
// one document.
func baseMetadata(filename string, profile classify.Profile) segment.Metadata {
	return segment.Metadata{
		SourceDocument: filename,
		DocumentTitle:  profile.DocumentTitle,
		DocumentType:   profile.DocumentType,
		Jurisdiction:   profile.Jurisdiction,
		Language:       profile.Language,
	}
}

// unit is one structural unit found by a boundary grammar: the captured
// locator number, the trimmed body, and the byte offset of the marker in
// the full text (used for context lookup and page estimation).
type unit struct {
	num   string
	body  string
	start int
}

// grammar is a declarative boundary rule: marker opens a unit, the body
// runs until the earliest terminator match or end of text.
type grammar struct {
	marker      *regexp.Regexp
	terminators []*regexp.Regexp

	// bodyBack rewinds the body start by this many bytes when the marker
	// had to consume the first body character to anchor itself (the UK
	// grammar requires a capital letter after the regulation number).
	bodyBack int
}

// scan walks the text sequentially, mirroring how the boundary grammar is
// written: the next unit is searched from the end of the previous body,
// so marker-shaped strings inside a body (cross-references like
// "Art. 21") do not open spurious units.
func (g grammar) scan(text string) []unit {
	var units []unit
	pos := 0
	for pos < len(text) {
		m := g.marker.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start := pos + m[0]
		bodyStart := pos + m[1] - g.bodyBack

		end := len(text)
		for _, term := range g.terminators {
			if loc := term.FindStringIndex(text[bodyStart:end]); loc != nil {
				end = bodyStart + loc[0]
			}
		}

		units = append(units, unit{
			num:   text[pos+m[2] : pos+m[3]],
			body:  strings.TrimSpace(text[bodyStart:end]),
			start: start,
		})
		pos = end
	}
	return units
}

// contextMark is a chapter/part heading with its text offset.
type contextMark struct {
	offset int
	label  string
	title  string
}

// findContextMarks collects hierarchical context headings. re must
// capture the chapter/part number as group 1 and the heading line as
// group 2; format renders the captured number into the stored label.
func findContextMarks(text string, re *regexp.Regexp, format func(num string) string) []contextMark {
	var marks []contextMark
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		marks = append(marks, contextMark{
			offset: m[0],
			label:  format(text[m[2]:m[3]]),
			title:  strings.TrimSpace(text[m[4]:m[5]]),
		})
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].offset < marks[j].offset })
	return marks
}

// contextAt returns the most recent context mark preceding offset.
func contextAt(marks []contextMark, offset int) (label, title string) {
	for _, m := range marks {
		if m.offset >= offset {
			break
		}
		label, title = m.label, m.title
	}
	return label, title
}

// splitTitle applies the first-line title rule: if the unit's first line
// does not look like a sub-item marker (per noTitle), it is the unit's
// title and the rest is body; otherwise the whole unit is body.
func splitTitle(body string, noTitle *regexp.Regexp) (title, rest string) {
	first, remainder, found := strings.Cut(body, "\n")
	first = strings.TrimSpace(first)
	if first == "" || noTitle.MatchString(first) {
		return "", body
	}
	if !found {
		return first, ""
	}
	return first, strings.TrimSpace(remainder)
}

// estimatePage estimates the 1-indexed page of a text offset by walking
// the cumulative character count of the page map (+2 per page for the
// double-newline separator). Offsets must be computed against the same
// normalized text the page map was built from.
func estimatePage(offset int, pages []extractor.Page) int {
	charCount := 0
	for _, p := range pages {
		charCount += len(p.Text) + 2
		if charCount >= offset {
			return p.Number
		}
	}
	if len(pages) > 0 {
		return pages[len(pages)-1].Number
	}
	return 1
}

// normalizePages applies the dialect's text normalization to every page
// so cumulative offsets line up with matches against the normalized full
// text.
func normalizePages(pages []extractor.Page, clean func(string) string) []extractor.Page {
	out := make([]extractor.Page, len(pages))
	for i, p := range pages {
		out[i] = extractor.Page{Text: clean(p.Text), Number: p.Number}
	}
	return out
}

// emit produces one segment, or hands the content to the oversize
// resolver when it exceeds the upper size bound. A unit of exactly the
// bound stays whole.
func emit(content, header string, meta segment.Metadata) []segment.Segment {
	if len(content) > splitter.MaxChunkSize {
		return splitter.Oversize(content, header, meta)
	}
	return []segment.Segment{{Content: content, Meta: meta}}
}
