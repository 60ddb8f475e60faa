package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
	"github.com/medregintel/segmenter/internal/splitter"
)

func euProfile() classify.Profile {
	return classify.Profile{
		DocumentType:  segment.DocRegulation,
		Jurisdiction:  segment.JurisdictionEU,
		Language:      "de",
		DocumentTitle: "EU MDR 2017/745",
		ParserKey:     classify.KeyEUMDR,
	}
}

func singlePageDoc(text string) *extractor.Document {
	return &extractor.Document{
		FullText: text,
		Pages:    []extractor.Page{{Text: text, Number: 1}},
	}
}

func TestEUMDRParser_RecitalsAndArticles(t *testing.T) {
	text := strings.Join([]string{
		"VERORDNUNG (EU) 2017/745 DES EUROPÄISCHEN PARLAMENTS UND DES RATES",
		"in Erwägung nachstehender Gründe:",
		"(1) Diese Verordnung soll einen reibungslosen Binnenmarkt für Medizinprodukte gewährleisten.",
		"(2) Hohe Anforderungen sichern Patienten, Anwender sowie weitere betroffene Personen dauerhaft.",
		"KAPITEL I",
		"Einleitende Bestimmungen",
		"Artikel 1",
		"Gegenstand und Geltungsbereich",
		"(1) Diese Verordnung enthält Vorschriften über bereitgestellte Medizinprodukte.",
		"Artikel 2",
		"Begriffsbestimmungen",
		"(1) Begriffsbestimmungen dieser Verordnung gelten einheitlich.",
		"ANHANG I",
		"Technische Dokumentation",
	}, "\n")

	parser := &EUMDRParser{}
	segs := parser.Parse(singlePageDoc(text), "eu_mdr.pdf", euProfile())
	require.Len(t, segs, 4)

	// Two recitals come first.
	assert.Equal(t, segment.TypeRecital, segs[0].Meta.ChunkType)
	assert.Equal(t, "Erwägungsgrund (1)", segs[0].Meta.ArticleID)
	assert.Equal(t, "Erwägungsgründe", segs[0].Meta.Chapter)
	assert.True(t, strings.HasPrefix(segs[0].Content, "(1) Diese Verordnung soll"))
	assert.Equal(t, "Erwägungsgrund (2)", segs[1].Meta.ArticleID)

	// Articles follow, with title, chapter context and locator header.
	art1 := segs[2]
	assert.Equal(t, segment.TypeArticle, art1.Meta.ChunkType)
	assert.Equal(t, "Artikel 1", art1.Meta.ArticleID)
	assert.Equal(t, "Gegenstand und Geltungsbereich", art1.Meta.ArticleTitle)
	assert.Equal(t, "KAPITEL I", art1.Meta.Chapter)
	assert.Equal(t, "Einleitende Bestimmungen", art1.Meta.Section)
	assert.Equal(t,
		"Artikel 1 – Gegenstand und Geltungsbereich\n"+
			"(1) Diese Verordnung enthält Vorschriften über bereitgestellte Medizinprodukte.",
		art1.Content)
	assert.Equal(t, 1, art1.Meta.Page)

	// The annex terminates the last article's body.
	art2 := segs[3]
	assert.Equal(t, "Artikel 2", art2.Meta.ArticleID)
	assert.Contains(t, art2.Content, "Begriffsbestimmungen dieser Verordnung")
	assert.NotContains(t, art2.Content, "ANHANG")
	assert.NotContains(t, art2.Content, "Technische Dokumentation")

	for _, s := range segs {
		assert.Equal(t, "eu_mdr.pdf", s.Meta.SourceDocument)
		assert.Equal(t, segment.JurisdictionEU, s.Meta.Jurisdiction)
		assert.Equal(t, "EU MDR 2017/745", s.Meta.DocumentTitle)
	}
}

func TestEUMDRParser_RepairsOCRText(t *testing.T) {
	text := strings.Join([]string{
		"Artikel 1",
		"Gegenstand",
		"Diese V erordnung regelt bereitgestellte Medizinprodukte.",
	}, "\n")

	parser := &EUMDRParser{}
	segs := parser.Parse(singlePageDoc(text), "eu_mdr.pdf", euProfile())
	require.Len(t, segs, 1)
	assert.Contains(t, segs[0].Content, "Diese Verordnung regelt")
	assert.NotContains(t, segs[0].Content, "V erordnung")
}

// A unit landing exactly on the size bound is emitted whole; one byte
// more goes through the oversize resolver.
func TestEUMDRParser_SizeBoundIsExclusive(t *testing.T) {
	header := "Artikel 1 – Zweck"
	body := strings.Repeat("x", splitter.MaxChunkSize-len(header)-1)

	parser := &EUMDRParser{}
	segs := parser.Parse(singlePageDoc("Artikel 1\nZweck\n"+body), "eu_mdr.pdf", euProfile())
	require.Len(t, segs, 1)
	assert.Len(t, segs[0].Content, splitter.MaxChunkSize)
	assert.Zero(t, segs[0].Meta.ChunkPart)

	segs = parser.Parse(singlePageDoc("Artikel 1\nZweck\n"+body+"x"), "eu_mdr.pdf", euProfile())
	assert.Greater(t, len(segs), 1)
}

func TestEUMDRParser_PageEstimation(t *testing.T) {
	page1 := strings.Join([]string{
		"Artikel 1",
		"Gegenstand",
		"(1) Diese Verordnung enthält Vorschriften über bereitgestellte Medizinprodukte.",
	}, "\n")
	page2 := strings.Join([]string{
		"KAPITEL II",
		"Bereitstellung von Produkten",
		"Artikel 2",
		"Begriffsbestimmungen",
		"(1) Begriffsbestimmungen dieser Verordnung gelten einheitlich.",
	}, "\n")

	doc := &extractor.Document{
		FullText: page1 + "\n\n" + page2,
		Pages: []extractor.Page{
			{Text: page1, Number: 1},
			{Text: page2, Number: 2},
		},
	}

	parser := &EUMDRParser{}
	segs := parser.Parse(doc, "eu_mdr.pdf", euProfile())
	require.Len(t, segs, 2)
	assert.Equal(t, 1, segs[0].Meta.Page)
	assert.Equal(t, 2, segs[1].Meta.Page)
	assert.Equal(t, "KAPITEL II", segs[1].Meta.Chapter)
}
