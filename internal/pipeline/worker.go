package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medregintel/segmenter/internal/engine"
	"github.com/medregintel/segmenter/internal/indexclient"
)

// Worker processes a single document job.
type Worker struct {
	engine  *engine.Engine
	indexer *indexclient.Client
	log     *slog.Logger
}

func NewWorker(eng *engine.Engine, indexer *indexclient.Client, log *slog.Logger) *Worker {
	return &Worker{
		engine:  eng,
		indexer: indexer,
		log:     log,
	}
}

// Process runs the segmentation pipeline for a job. A failed push to the
// downstream indexer leaves the job partial: the segments exist and can
// be fetched, they just were not delivered.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	job.SetStatus(StatusSegmenting, "segmenting")
	data := job.FileData()
	job.ContentHash = ContentHashHex(data)

	segs, err := w.engine.SegmentBytes(data, job.Filename)
	if err != nil {
		log.Error("segmentation failed", "error", err)
		job.AddError(fmt.Sprintf("segment: %s", err))
		job.SetStatus(StatusFailed, "segmenting")
		return
	}
	job.SetSegments(segs)
	log.Info("segmented document", "segments", len(segs))

	if w.indexer.Enabled() {
		job.SetStatus(StatusPushing, "pushing")
		if err := w.indexer.PushSegments(ctx, job.Filename, segs); err != nil {
			log.Error("index push failed", "error", err)
			job.AddError(fmt.Sprintf("push: %s", err))
			job.SetStatus(StatusPartial, "pushing")
			return
		}
	}

	job.SetStatus(StatusCompleted, "done")
}
