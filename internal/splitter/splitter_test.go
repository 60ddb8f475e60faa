package splitter

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medregintel/segmenter/internal/segment"
)

func TestSplitBefore(t *testing.T) {
	re := regexp.MustCompile(`(^|\n)\(\d+\)\s`)

	parts := SplitBefore(re, "(1) a\n(2) b\n(3) c")
	require.Equal(t, []string{"(1) a", "\n(2) b", "\n(3) c"}, parts)

	// The boundary stays with the following piece, so concatenating the
	// pieces reconstructs the input.
	assert.Equal(t, "(1) a\n(2) b\n(3) c", strings.Join(parts, ""))

	// No match means a single piece.
	parts = SplitBefore(re, "kein Treffer hier")
	assert.Equal(t, []string{"kein Treffer hier"}, parts)
}

func TestOversize_NumberedParagraphs(t *testing.T) {
	header := "Artikel 10 – Pflichten der Hersteller"
	meta := segment.Metadata{ArticleID: "Artikel 10", ChunkType: segment.TypeArticle}

	p0 := "(1) " + strings.Repeat("a", 900)
	p1 := "\n(2) " + strings.Repeat("b", 900)
	p2 := "\n(3) " + strings.Repeat("c", 900)
	text := p0 + p1 + p2

	segs := Oversize(text, header, meta)
	require.Len(t, segs, 2)

	// First two paragraphs pack into one chunk under the bound, the
	// third spills over.
	assert.True(t, strings.HasPrefix(segs[0].Content, "(1) "))
	assert.Contains(t, segs[0].Content, "(2) ")
	assert.True(t, strings.HasPrefix(segs[1].Content, header+"\n(3) "))

	for _, s := range segs {
		assert.LessOrEqual(t, len(s.Content), MaxChunkSize+len(header)+1)
		assert.Equal(t, "Artikel 10", s.Meta.ArticleID)
		assert.Equal(t, 2, s.Meta.ChunkTotal)
	}
	assert.Equal(t, 1, segs[0].Meta.ChunkPart)
	assert.Equal(t, 2, segs[1].Meta.ChunkPart)

	// Stripping the re-prepended header reconstructs the unit.
	rebuilt := segs[0].Content + "\n" + strings.TrimPrefix(segs[1].Content, header+"\n")
	assert.Equal(t, text, rebuilt)
}

func TestOversize_PlainNumberedParagraphs(t *testing.T) {
	header := "Art. 45 Verfahren"
	text := "Einleitung " + strings.Repeat("x", 800) +
		"\n1 Absatz " + strings.Repeat("y", 800) +
		"\n2 Absatz " + strings.Repeat("z", 800)

	segs := Oversize(text, header, segment.Metadata{})
	require.Len(t, segs, 2)
	assert.Contains(t, segs[0].Content, "1 Absatz")
	assert.True(t, strings.HasPrefix(segs[1].Content, header+"\n2 Absatz"))
}

func TestOversize_LetteredItems(t *testing.T) {
	header := "Regulation 8. Essential requirements"
	text := "Liste der Anforderungen:" +
		"\na) " + strings.Repeat("p", 700) +
		"\nb) " + strings.Repeat("q", 700) +
		"\nc) " + strings.Repeat("r", 700) +
		"\nd) " + strings.Repeat("s", 700)

	segs := Oversize(text, header, segment.Metadata{})
	require.Len(t, segs, 2)
	assert.Contains(t, segs[0].Content, "a) ")
	assert.Contains(t, segs[0].Content, "b) ")
	assert.Contains(t, segs[1].Content, "c) ")
	assert.Contains(t, segs[1].Content, "d) ")
}

func TestOversize_BlankLineParagraphs(t *testing.T) {
	header := "Erwägungsgrund (12)"
	para1 := strings.Repeat("m", 1200)
	para2 := strings.Repeat("n", 1200)

	segs := Oversize(para1+"\n\n"+para2, header, segment.Metadata{})
	require.Len(t, segs, 2)
	assert.Equal(t, para1, segs[0].Content)
	assert.Equal(t, header+"\n"+para2, segs[1].Content)

	// The paragraph boundary is recoverable across the chunk split.
	rebuilt := segs[0].Content + "\n\n" + strings.TrimPrefix(segs[1].Content, header+"\n")
	assert.Equal(t, para1+"\n\n"+para2, rebuilt)
}

func TestOversize_PackedParagraphsKeepBoundary(t *testing.T) {
	header := "Erwägungsgrund (13)"
	a := strings.Repeat("a", 600)
	b := strings.Repeat("b", 600)
	c := strings.Repeat("c", 1200)

	segs := Oversize(a+"\n\n"+b+"\n\n"+c, header, segment.Metadata{})
	require.Len(t, segs, 2)
	assert.Equal(t, a+"\n\n"+b, segs[0].Content)
	assert.Equal(t, header+"\n"+c, segs[1].Content)
}

func TestOversize_NoStructureFallsBackToWindows(t *testing.T) {
	header := "Artikel 2 – Begriffsbestimmungen"
	text := strings.TrimSpace(strings.Repeat("wort ", 1000))

	segs := Oversize(text, header, segment.Metadata{ChunkType: segment.TypeArticle})
	require.GreaterOrEqual(t, len(segs), 3)
	for _, s := range segs {
		assert.True(t, strings.HasPrefix(s.Content, header+"\n"))
		assert.LessOrEqual(t, len(s.Content), MaxChunkSize+len(header)+1)
		// Windowed fallback carries no part indices.
		assert.Zero(t, s.Meta.ChunkPart)
		assert.Zero(t, s.Meta.ChunkTotal)
	}
}

func TestOversize_ReSplitsGiantPiece(t *testing.T) {
	header := "Artikel 120 – Übergangsbestimmungen"
	text := "(1) " + strings.Repeat("a", 4000) + "\n(2) kurz."

	segs := Oversize(text, header, segment.Metadata{})
	require.GreaterOrEqual(t, len(segs), 3)

	// The giant first paragraph is window-split; all its windows keep
	// the same part index.
	for _, s := range segs[:len(segs)-1] {
		assert.Equal(t, 1, s.Meta.ChunkPart)
		assert.LessOrEqual(t, len(s.Content), MaxChunkSize)
	}
	last := segs[len(segs)-1]
	assert.Equal(t, 2, last.Meta.ChunkPart)
	assert.Equal(t, header+"\n(2) kurz.", last.Content)
}

func TestWindow_Bounds(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("w")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" ")
	}
	text := strings.TrimSpace(sb.String())

	out := Window(text, 300, 60)
	require.GreaterOrEqual(t, len(out), 5)

	total := 0
	for _, w := range out {
		assert.LessOrEqual(t, len([]rune(w)), 300)
		total += len(w)
	}
	// Overlap duplicates text across windows.
	assert.Greater(t, total, len(text))

	// Whitespace-preferring cuts keep every word intact in at least one
	// window.
	for i := 0; i < 400; i++ {
		word := "w" + strconv.Itoa(i)
		found := false
		for _, w := range out {
			if strings.Contains(w, word) {
				found = true
				break
			}
		}
		assert.True(t, found, "word %s missing from all windows", word)
	}
}

func TestWindow_NoWhitespaceStillTerminates(t *testing.T) {
	text := strings.Repeat("a", 5000)
	out := Window(text, 2000, 200)
	require.Len(t, out, 3)
	assert.Len(t, out[0], 2000)
}

func TestWindow_ShortInput(t *testing.T) {
	assert.Equal(t, []string{"kurzer Text"}, Window("kurzer Text", 800, 200))
	assert.Nil(t, Window("", 800, 200))
}
