package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
)

func ukProfile() classify.Profile {
	return classify.Profile{
		DocumentType:  segment.DocRegulation,
		Jurisdiction:  segment.JurisdictionUK,
		Language:      "en",
		DocumentTitle: "UK Medical Devices Regulations 2002",
		ParserKey:     classify.KeyUKMDR,
	}
}

func TestUKMDRParser_Regulations(t *testing.T) {
	text := strings.Join([]string{
		"PART I",
		"General",
		"1. Citation and commencement",
		"(1) These Regulations may be cited accordingly.",
		"3",
		"2. Interpretation",
		"In these Regulations a reference includes any schedule thereto.",
		"SCHEDULE 1",
		"Devices covered",
	}, "\n")

	doc := &extractor.Document{
		FullText: text,
		Pages:    []extractor.Page{{Text: text, Number: 1}},
	}

	parser := &UKMDRParser{}
	segs := parser.Parse(doc, "uk_mdr.pdf", ukProfile())
	require.Len(t, segs, 2)

	r1 := segs[0]
	assert.Equal(t, "Regulation 1", r1.Meta.ArticleID)
	assert.Equal(t, "Citation and commencement", r1.Meta.ArticleTitle)
	assert.Equal(t, "Part I", r1.Meta.Chapter)
	assert.Equal(t, "General", r1.Meta.Section)
	assert.True(t, strings.HasPrefix(r1.Content, "Regulation 1. Citation and commencement\n(1) These Regulations"))

	// The bare page-number line between regulations is stripped.
	assert.NotContains(t, r1.Content, "\n3\n")

	// The schedules terminate the last regulation's body.
	r2 := segs[1]
	assert.Equal(t, "Regulation 2", r2.Meta.ArticleID)
	assert.Equal(t, "Interpretation", r2.Meta.ArticleTitle)
	assert.Contains(t, r2.Content, "any schedule thereto")
	assert.NotContains(t, r2.Content, "Devices covered")
}
