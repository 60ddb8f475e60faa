package dialect

import (
	"regexp"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/normalize"
	"github.com/medregintel/segmenter/internal/segment"
)

// MPDGParser handles the German Medizinprodukterecht-Durchführungsgesetz.
// Units are the law's paragraphs ("§ 1", "§ 12a"), grouped under
// "Kapitel N" headings.
type MPDGParser struct{}

var (
	// "§ N" must open a line; inline references ("nach § 3 Absatz 2")
	// stay inside the running text.
	deGrammar = grammar{
		marker: regexp.MustCompile(`(?:^|\n)§\s*(\d+\w?)\s+`),
		terminators: []*regexp.Regexp{
			regexp.MustCompile(`\n§\s*\d`),
		},
	}

	deChapter = regexp.MustCompile(`Kapitel\s+(\d+)\s*\n([^\n]+)`)

	// A paragraph title is the first body line unless the body starts
	// with a numbered sub-paragraph, with or without parentheses.
	deNoTitle = regexp.MustCompile(`^[(\d]`)
)

func (p *MPDGParser) Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment {
	text := normalize.StripMPDGBoilerplate(doc.FullText)
	pages := normalizePages(doc.Pages, normalize.StripMPDGBoilerplate)

	base := baseMetadata(filename, profile)
	chapters := findContextMarks(text, deChapter, func(num string) string {
		return "Kapitel " + num
	})

	var segs []segment.Segment
	for _, u := range deGrammar.scan(text) {
		title, body := splitTitle(u.body, deNoTitle)
		chapter, chapterTitle := contextAt(chapters, u.start)

		locator := "§ " + u.num
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
