package segment

// Segment is one unit of output text plus its provenance metadata.
// Segments are value objects: the engine creates them fresh per ingestion
// call and retains nothing between calls.
type Segment struct {
	Content string   `json:"content"`
	Meta    Metadata `json:"metadata"`
}

// Chunk types.
const (
	TypeRecital  = "recital"
	TypeArticle  = "article"
	TypeGuidance = "guidance"
)

// Document types.
const (
	DocLaw        = "law"
	DocRegulation = "regulation"
	DocGuidance   = "guidance"
	DocOther      = "other"
)

// Jurisdictions.
const (
	JurisdictionEU      = "EU"
	JurisdictionDE      = "DE"
	JurisdictionCH      = "CH"
	JurisdictionUK      = "UK"
	JurisdictionUnknown = "unknown"
)

// Metadata carries the provenance of a segment. It is a value type:
// derived segments get copies extended via the With* helpers, never a
// shared mapping, so sibling segments cannot alias each other's fields.
type Metadata struct {
	SourceDocument string `json:"source_document"`
	DocumentTitle  string `json:"document_title"`
	DocumentType   string `json:"document_type"`
	Jurisdiction   string `json:"jurisdiction"`
	Language       string `json:"language"`
	ArticleID      string `json:"article_id"`
	ArticleTitle   string `json:"article_title"`
	Chapter        string `json:"chapter"`
	Section        string `json:"section"`
	Page           int    `json:"page"`
	ChunkType      string `json:"chunk_type"`
	ChunkPart      int    `json:"chunk_part,omitempty"`
	ChunkTotal     int    `json:"chunk_total,omitempty"`
}

// WithPart returns a copy marked as part N of M of a re-split unit.
func (m Metadata) WithPart(part, total int) Metadata {
	m.ChunkPart = part
	m.ChunkTotal = total
	return m
}

// WithLocation returns a copy carrying structural position fields.
func (m Metadata) WithLocation(articleID, articleTitle, chapter, section string, page int, chunkType string) Metadata {
	m.ArticleID = articleID
	m.ArticleTitle = articleTitle
	m.Chapter = chapter
	m.Section = section
	m.Page = page
	m.ChunkType = chunkType
	return m
}
