// Package engine wires extraction, classification, dialect parsing and
// resizing into the per-document segmentation flow. The engine is
// stateless and synchronous: one document is fully processed per call,
// and independent callers may run in parallel without coordination.
package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/medregintel/segmenter/internal/classify"
	"github.com/medregintel/segmenter/internal/dialect"
	"github.com/medregintel/segmenter/internal/extractor"
	"github.com/medregintel/segmenter/internal/segment"
)

// Engine segments regulatory documents.
type Engine struct {
	log *slog.Logger
}

// New returns an engine logging through log.
func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// SegmentBytes segments one in-memory document. The filename is used for
// format dispatch, classification hints and provenance metadata only; it
// is never dereferenced as a path.
//
// A document whose dialect parser matches nothing is retried with the
// guidance fallback, so non-empty input never yields zero segments.
func (e *Engine) SegmentBytes(data []byte, filename string) ([]segment.Segment, error) {
	ext, err := extractor.ForFile(filename)
	if err != nil {
		return nil, err
	}

	doc, err := ext.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	profile := classify.Detect(doc.FullText, filename)
	segs := dialect.ForKey(profile.ParserKey).Parse(doc, filename, profile)

	if len(segs) == 0 && strings.TrimSpace(doc.FullText) != "" {
		e.log.Warn("dialect parser found no segments, using guidance fallback",
			"filename", filename,
			"parser", profile.ParserKey,
		)
		segs = (&dialect.GuidanceParser{}).Parse(doc, filename, profile)
	}

	return segs, nil
}

// SegmentFile reads and segments a document from disk. The provenance
// filename is the path's base name.
func (e *Engine) SegmentFile(path string) ([]segment.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.SegmentBytes(data, filepath.Base(path))
}

// Input is one document in a batch: either a path or in-memory bytes.
type Input struct {
	Path     string
	Data     []byte
	Filename string
}

func (in Input) name() string {
	if in.Filename != "" {
		return in.Filename
	}
	return filepath.Base(in.Path)
}

// Result reports one document's outcome within a batch.
type Result struct {
	Filename string
	Segments int
	Err      error
}

// SegmentBatch segments a batch of documents. Documents are independent:
// one document's failure is recorded in its Result and the batch
// continues. The returned segments are the concatenation of every
// successful document's sequence, in input order.
func (e *Engine) SegmentBatch(inputs []Input) ([]segment.Segment, []Result) {
	var all []segment.Segment
	results := make([]Result, 0, len(inputs))

	for _, in := range inputs {
		name := in.name()

		var segs []segment.Segment
		var err error
		if in.Data != nil {
			segs, err = e.SegmentBytes(in.Data, name)
		} else {
			segs, err = e.SegmentFile(in.Path)
		}
		if err != nil {
			e.log.Error("document failed", "filename", name, "error", err)
			results = append(results, Result{Filename: name, Err: err})
			continue
		}

		e.log.Info("segmented document", "filename", name, "segments", len(segs))
		results = append(results, Result{Filename: name, Segments: len(segs)})
		all = append(all, segs...)
	}

	e.log.Info("batch complete", "documents", len(inputs), "segments", len(all))
	return all, results
}
