package dialect

import (
	"regexp"
	"strings"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
	"github.com/medregintel/segmenter/internal/splitter"
)

// GuidanceParser is the fallback for guidance documents and anything
// whose structure was not recognized. It looks for numbered heading
// lines ("1.2 Clinical evaluation") and segments between them; when no
// headings exist at all the whole document goes through the generic
// windowed splitter.
type GuidanceParser struct{}

// A heading is a short numbered line starting with a capital.
var guidanceHeading = regexp.MustCompile(`(?m)^(\d+\.?\d*\.?\s+[A-Z].{5,80})$`)

func (p *GuidanceParser) Parse(doc *extractor.Document, filename string, profile classify.Profile) []segment.Segment {
	text := doc.FullText
	base := baseMetadata(filename, profile)
	base.ChunkType = segment.TypeGuidance
	base.Page = 1

	headings := guidanceHeading.FindAllStringSubmatchIndex(text, -1)
	if len(headings) == 0 {
		var segs []segment.Segment
		for _, w := range splitter.Window(text, splitter.FallbackChunkSize, splitter.FallbackChunkOverlap) {
			segs = append(segs, segment.Segment{Content: w, Meta: base})
		}
		return segs
	}

	var segs []segment.Segment
	for i, h := range headings {
		start := h[0]
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}
		sectionText := strings.TrimSpace(text[start:end])
		heading := strings.TrimSpace(text[h[2]:h[3]])

		meta := base
		meta.Section = heading
		if fields := strings.Fields(heading); len(fields) > 0 {
			meta.ArticleID = fields[0]
		}
		meta.Page = estimatePage(start, doc.Pages)

		if len(sectionText) > splitter.MaxChunkSize {
			for _, w := range splitter.Window(sectionText, splitter.FallbackChunkSize, splitter.FallbackChunkOverlap) {
				segs = append(segs, segment.Segment{Content: w, Meta: meta})
			}
			continue
		}
		segs = append(segs, segment.Segment{Content: sectionText, Meta: meta})
	}
	return segs
}
