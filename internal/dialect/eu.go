package dialect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/normalize"
	"github.com/medregintel/segmenter/internal/segment"
	"github.com/medregintel/segmenter/internal/splitter"
)

// EUMDRParser handles the EU MDR 2017/745 (German text). The scanned EU
// PDF carries OCR artifacts, so its text is repaired before boundary
// matching.
type EUMDRParser struct{}

var (
	// The recital block runs from the introductory phrase to the first
	// article or chapter heading.
	euRecitalsIntro = regexp.MustCompile(`(?i)in\s+Erwägung\s+nachstehender\s+Gründe:`)
	euRecitalsEnd   = regexp.MustCompile(`(?i)Artikel\s+1\b|KAPITEL\s+I\b`)
	euRecitalItem   = regexp.MustCompile(`\(\d+\)\s`)
	euRecitalNum    = regexp.MustCompile(`^\((\d+)\)`)

	// "Artikel N" on a line of its own; references like "gemäß Artikel 52
	// Absatz 3" stay inside the running text.
	euGrammar = grammar{
		marker: regexp.MustCompile(`(?:^|\n)Artikel\s+(\d+)\s*\n`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`\nArtikel\s+\d+\s*\n`),
			regexp.MustCompile(`ANHANG`),
		},
	}

	euChapter = regexp.MustCompile(`KAPITEL\s+([IVXLC]+)\s*\n([^\n]+)`)

	// An article title is the first body line unless the body starts
	// directly with a numbered sub-paragraph.
	euNoTitle = regexp.MustCompile(`^\(`)
)

// minRecitalLen drops recital fragments too short to stand alone
// (stray numbering left over from table-of-contents pages).
const minRecitalLen = 50

func (p *EUMDRParser) Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment {
	text := normalize.RepairOCR(doc.FullText)
	pages := normalizePages(doc.Pages, normalize.RepairOCR)

	base := baseMetadata(filename, profile)
	var segs []segment.Segment

	segs = append(segs, p.parseRecitals(text, pages, base)...)

	chapters := findContextMarks(text, euChapter, func(num string) string {
		return "KAPITEL " + num
	})

	for _, u := range euGrammar.scan(text) {
		title, body := splitTitle(u.body, euNoTitle)
		chapter, chapterTitle := contextAt(chapters, u.start)

		locator := "Artikel " + u.num
		header := locator
		content := locator + "\n" + body
		if title != "" {
			header = locator + " – " + title
			content = header + "\n" + body
		}

		meta := base.WithLocation(locator, title, chapter, chapterTitle,
			estimatePage(u.start, pages), segment.TypeArticle)
		segs = append(segs, emit(content, header, meta)...)
	}

	return segs
}

// parseRecitals splits the preamble's numbered recital items into their
// own segments.
func (p *EUMDRParser) parseRecitals(text string, pages []extractor.Page, base segment.Metadata) []segment.Segment {
	intro := euRecitalsIntro.FindStringIndex(text)
	if intro == nil {
		return nil
	}
	block := text[intro[1]:]
	if end := euRecitalsEnd.FindStringIndex(block); end != nil {
		block = block[:end[0]]
	}

	var segs []segment.Segment
	for _, part := range splitter.SplitBefore(euRecitalItem, block) {
		part = strings.TrimSpace(part)
		if len([]rune(part)) < minRecitalLen {
			continue
		}
		num := "?"
		if m := euRecitalNum.FindStringSubmatch(part); m != nil {
			num = m[1]
		}
		locator := fmt.Sprintf("Erwägungsgrund (%s)", num)
		meta := base.WithLocation(locator, "", "Erwägungsgründe", "",
			estimatePage(intro[0], pages), segment.TypeRecital)
		segs = append(segs, emit(part, locator, meta)...)
	}
	return segs
}
