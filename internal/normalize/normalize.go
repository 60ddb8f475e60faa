// Package normalize repairs OCR artifacts and strips recurring page
// boilerplate from extracted regulatory text. Both operations are
// dialect-specific: OCR repair is only safe on documents whose text layer
// exhibits the broken-word pattern, and each jurisdiction has its own
// header/footer lines.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// The scanned EU MDR PDF systematically inserts a space after a capital
// letter ("V erordnung", "K ommission", "K onf or mit ät"). Known broken
// forms are fixed first; longer forms must precede their prefixes so
// "Ü bereinstimmung" is not half-repaired by "Ü ber".
var knownFixes = strings.NewReplacer(
	"V erordnung", "Verordnung",
	"K ommission", "Kommission",
	"P arlament", "Parlament",
	"P arlaments", "Parlaments",
	"P atienten", "Patienten",
	"P atient", "Patient",
	"K onf or mit ät", "Konformität",
	"K onf or mit äts", "Konformitäts",
	"K onf or mit", "Konformit",
	"T ransparenz", "Transparenz",
	"A ufbereitung", "Aufbereitung",
	"A ufbereiter", "Aufbereiter",
	"Ü bereinstimmung", "Übereinstimmung",
	"Ü ber wachung", "Überwachung",
	"Ü ber", "Über",
	"R ates", "Rates",
	"R ahmen", "Rahmen",
	"U nion", "Union",
	"U nionsebene", "Unionsebene",
	"K onsultationen", "Konsultationen",
	"K oordinier", "Koordinier",
	"A ußerdem", "Außerdem",
	"W irtschaftsakteur", "Wirtschaftsakteur",
)

var (
	// Single uppercase letter split off the start of a word. The preceding
	// character must not be a letter so running text is left alone.
	upperSplit = regexp.MustCompile(`(^|[^\p{L}])([A-ZÄÖÜ])\s([a-zäöüß])`)

	// Short lowercase fragment split out of the middle of a word, e.g.
	// "Konf or mit" or "sch wer wiegend". Restricted to fragments of at
	// most 3 letters.
	midSplit = regexp.MustCompile(`([a-zäöüß])\s([a-zäöüß]{1,3})\s([a-zäöüß])`)

	multiSpace = regexp.MustCompile(`  +`)
)

// RepairOCR repairs the spurious-space artifacts found in OCR'd legal PDF
// text layers. This is lossy best-effort repair: it is not guaranteed to
// restore original spelling, and it must not be applied to dialects that
// do not exhibit the artifact.
func RepairOCR(text string) string {
	text = norm.NFC.String(text)

	text = knownFixes.Replace(text)
	text = upperSplit.ReplaceAllString(text, "${1}${2}${3}")
	// Repeated to catch nested artifacts ("K onf or mit ät" needs more
	// than one pass once the leading capital is rejoined).
	for i := 0; i < 3; i++ {
		text = midSplit.ReplaceAllString(text, "${1}${2}${3}")
	}
	text = multiSpace.ReplaceAllString(text, " ")

	return text
}

var (
	mpdgService  = regexp.MustCompile(`Ein Service des Bundesministerium der Justiz.*?www\.gesetze-im-internet\.de\s*`)
	mpdgPageLine = regexp.MustCompile(`- Seite \d+ von \d+ -`)

	mepvTitleLine  = regexp.MustCompile(`(?m)^Medizinprodukteverordnung\s*$`)
	mepvHeilmittel = regexp.MustCompile(`(?m)^Heilmittel\s*$`)
	mepvPageLine   = regexp.MustCompile(`(?m)^\d+\s*/\s*64\s*$`)
	mepvSRNumber   = regexp.MustCompile(`(?m)^812\.213\s*$`)

	ukTrailingNumber = regexp.MustCompile(`(?m)\d+\s*$`)
)

// StripMPDGBoilerplate removes the gesetze-im-internet.de service banner
// and "- Seite N von M -" markers from MPDG pages.
func StripMPDGBoilerplate(text string) string {
	text = mpdgService.ReplaceAllString(text, "")
	text = mpdgPageLine.ReplaceAllString(text, "")
	return text
}

// StripMepVBoilerplate removes recurring header lines from Swiss MepV
// pages. Only standalone lines are removed; the same words inside a
// running sentence are kept.
func StripMepVBoilerplate(text string) string {
	text = mepvTitleLine.ReplaceAllString(text, "")
	text = mepvHeilmittel.ReplaceAllString(text, "")
	text = mepvPageLine.ReplaceAllString(text, "")
	text = mepvSRNumber.ReplaceAllString(text, "")
	return text
}

// StripUKPageNumbers removes trailing page numbers from UK MDR pages.
func StripUKPageNumbers(text string) string {
	return ukTrailingNumber.ReplaceAllString(text, "")
}
