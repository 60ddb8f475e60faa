package dialect

import (
	"regexp"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/normalize"
	"github.com/medregintel/segmenter/internal/segment"
)

// UKMDRParser handles the UK Medical Devices Regulations 2002. Units are
// numbered regulations ("1. Citation and commencement"), grouped under
// "PART I" headings and terminated by the schedules.
type UKMDRParser struct{}

var (
	// A regulation opens a line with "N." followed by a capitalized
	// word. The capital letter anchors the marker but belongs to the
	// body, hence bodyBack.
	ukGrammar = grammar{
		marker: regexp.MustCompile(`(?:^|\n)(\d+)\.\s+[A-Z]`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`\n\d+\.\s+[A-Z]`),
			regexp.MustCompile(`SCHEDULE`),
		},
		bodyBack: 1,
	}

	ukPart = regexp.MustCompile(`PART\s+([IVXLC]+)\s*\n([^\n]+)`)

	ukNoTitle = regexp.MustCompile(`^\(`)
)

func (p *UKMDRParser) Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment {
	text := normalize.StripUKPageNumbers(doc.FullText)
	pages := normalizePages(doc.Pages, normalize.StripUKPageNumbers)

	base := baseMetadata(filename, profile)
	parts := findContextMarks(text, ukPart, func(num string) string {
		return "Part " + num
	})

	var segs []segment.Segment
	for _, u := range ukGrammar.scan(text) {
		title, body := splitTitle(u.body, ukNoTitle)
		part, partTitle := contextAt(parts, u.start)

		locator := "Regulation " + u.num
		header := locator
		content := locator + "\n" + body
		if title != "" {
			header = locator + ". " + title
			content = header + "\n" + body
		}

		meta := base.WithLocation(locator, title, part, partTitle,
			estimatePage(u.start, pages), segment.TypeArticle)
		segs = append(segs, emit(content, header, meta)...)
	}
	return segs
}
