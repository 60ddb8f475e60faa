// Package classify inspects extracted text and the filename to decide
// which jurisdiction profile and dialect parser apply to a document.
package classify

import (
	"regexp"
	"strings"

	"github.com/medregintel/segmenter/internal/segment"
)

// Parser keys understood by the dialect registry.
const (
	KeyEUMDR    = "eu_mdr"
	KeyDEMPDG   = "de_mpdg"
	KeyCHMepV   = "ch_mepv"
	KeyUKMDR    = "uk_mdr"
	KeyGuidance = "guidance"
)

// Profile selects the dialect parser and fixes the document-level
// metadata fields. It is constructed once per document and consumed
// immediately, never persisted.
type Profile struct {
	DocumentType  string
	Jurisdiction  string
	Language      string
	DocumentTitle string
	ParserKey     string
}

// sampleSize is how much of the document the classifier looks at. The
// defining markers of every supported dialect appear on the first pages.
const sampleSize = 5000

// englishStopwords is a crude language heuristic, not a reliable
// detector: a handful of common English function words checked against
// the first 1000 characters.
var englishStopwords = regexp.MustCompile(`\b(the|and|of|for|with)\b`)

// Detect classifies a document from its extracted text and filename.
//
// Rule order matters and the first match wins: the German and Swiss
// implementing acts both cite the EU regulation 2017/745 by number, so
// the more specific jurisdictions must be checked before the EU rule.
// Detect never fails; unrecognized text resolves to the "other" profile
// handled by the guidance parser.
func Detect(text, filename string) Profile {
	sample := text
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	lower := strings.ToLower(sample)
	filenameLower := strings.ToLower(filename)

	// 1. German MPDG. Checked before EU because the MPDG references
	// regulation 2017/745 throughout.
	if strings.Contains(lower, "medizinprodukterecht-durchführungsgesetz") ||
		strings.Contains(lower, "mpdg") ||
		strings.Contains(lower, "durchführungsgesetz") ||
		strings.Contains(lower, "bundesministerium der justiz") {
		return Profile{
			DocumentType:  segment.DocLaw,
			Jurisdiction:  segment.JurisdictionDE,
			Language:      "de",
			DocumentTitle: "MPDG (Medizinprodukterecht-Durchführungsgesetz)",
			ParserKey:     KeyDEMPDG,
		}
	}

	// 2. Swiss MepV, likewise before EU.
	if strings.Contains(sample, "812.213") ||
		strings.Contains(lower, "schweizerische bundesrat") ||
		(strings.Contains(lower, "medizinprodukteverordnung") && strings.Contains(lower, "mepv")) ||
		strings.Contains(filenameLower, "fedlex") {
		return Profile{
			DocumentType:  segment.DocRegulation,
			Jurisdiction:  segment.JurisdictionCH,
			Language:      "de",
			DocumentTitle: "MepV (Medizinprodukteverordnung Schweiz)",
			ParserKey:     KeyCHMepV,
		}
	}

	// 3. UK MDR.
	if strings.Contains(lower, "medical devices regulations 2002") {
		return Profile{
			DocumentType:  segment.DocRegulation,
			Jurisdiction:  segment.JurisdictionUK,
			Language:      "en",
			DocumentTitle: "UK Medical Devices Regulations 2002",
			ParserKey:     KeyUKMDR,
		}
	}

	// 4. EU MDR, last because it is the most generic. "ver ordnung" is
	// the OCR-broken spelling found in the scanned EU PDF.
	if strings.Contains(sample, "2017/745") &&
		(strings.Contains(lower, "verordnung") || strings.Contains(lower, "ver ordnung")) {
		return Profile{
			DocumentType:  segment.DocRegulation,
			Jurisdiction:  segment.JurisdictionEU,
			Language:      "de",
			DocumentTitle: "EU MDR 2017/745",
			ParserKey:     KeyEUMDR,
		}
	}

	// 5. Guidance documents.
	if strings.Contains(lower, "guidance") ||
		strings.Contains(lower, "mdcg") ||
		strings.Contains(lower, "conformity") {
		jurisdiction := segment.JurisdictionEU
		if strings.Contains(lower, "united kingdom") ||
			strings.Contains(lower, " gb ") ||
			strings.Contains(lower, "uk mdr") {
			jurisdiction = segment.JurisdictionUK
		}
		return Profile{
			DocumentType:  segment.DocGuidance,
			Jurisdiction:  jurisdiction,
			Language:      detectLanguage(text),
			DocumentTitle: strings.TrimSuffix(filename, ".pdf"),
			ParserKey:     KeyGuidance,
		}
	}

	// 6. Unknown.
	return Profile{
		DocumentType:  segment.DocOther,
		Jurisdiction:  segment.JurisdictionUnknown,
		Language:      detectLanguage(text),
		DocumentTitle: strings.TrimSuffix(filename, ".pdf"),
		ParserKey:     KeyGuidance,
	}
}

func detectLanguage(text string) string {
	if len(text) > 1000 {
		text = text[:1000]
	}
	if englishStopwords.MatchString(text) {
		return "en"
	}
	return "de"
}
