package dialect

import (
	"regexp"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/normalize"
	"github.com/medregintel/segmenter/internal/segment"
)

// MepVParser handles the Swiss Medizinprodukteverordnung. Units are
// articles ("Art. 1", "Art. 4a"), grouped under "N. Kapitel: Titel"
// headings.
type MepVParser struct{}

var (
	chGrammar = grammar{
		marker: regexp.MustCompile(`Art\.\s*(\d+\w?)\s+`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`\nArt\.\s*\d`),
		},
	}

	chChapter = regexp.MustCompile(`(\d+)\.\s*Kapitel[:\s]+([^\n]+)`)

	// Swiss article bodies open with unparenthesized paragraph numbers
	// ("1 Diese Verordnung..."), so a digit means there is no title line.
	chNoTitle = regexp.MustCompile(`^\d`)
)

func (p *MepVParser) Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment {
	text := normalize.StripMepVBoilerplate(doc.FullText)
	pages := normalizePages(doc.Pages, normalize.StripMepVBoilerplate)

	base := baseMetadata(filename, profile)
	chapters := findContextMarks(text, chChapter, func(num string) string {
		return "Kapitel " + num
	})

	var segs []segment.Segment
	for _, u := range chGrammar.scan(text) {
		title, body := splitTitle(u.body, chNoTitle)
		chapter, chapterTitle := contextAt(chapters, u.start)

		locator := "Art. " + u.num
		header := locator
		content := locator + "\n" + body
		if title != "" {
			header = locator + " " + title
			content = header + "\n" + body
		}

		meta := base.WithLocation(locator, title, chapter, chapterTitle,
			estimatePage(u.start, pages), segment.TypeArticle)
		segs = append(segs, emit(content, header, meta)...)
	}
	return segs
}
