package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/medregintel/segmenter/internal/segment"
)

// JobStatus represents the state of a segmentation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusSegmenting JobStatus = "segmenting"
	StatusPushing    JobStatus = "pushing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Job tracks the segmentation of a single document.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	SegmentCount int `json:"segment_count"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	segments []segment.Segment
	errors   []string
}

// SetFileData attaches the uploaded document bytes.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetSegments records the segmentation result and clears the input bytes,
// which are no longer needed.
func (j *Job) SetSegments(segs []segment.Segment) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.segments = segs
	j.SegmentCount = len(segs)
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// Snapshot returns a copy of the job's public state.
type Snapshot struct {
	ID           string    `json:"job_id"`
	DocID        string    `json:"doc_id"`
	Status       JobStatus `json:"status"`
	Phase        string    `json:"phase"`
	Filename     string    `json:"filename"`
	SegmentCount int       `json:"segment_count"`
	Errors       []string  `json:"errors,omitempty"`
}

func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return Snapshot{
		ID:           j.ID,
		DocID:        j.DocID,
		Status:       j.Status,
		Phase:        j.Phase,
		Filename:     j.Filename,
		SegmentCount: j.SegmentCount,
		Errors:       errs,
	}
}

// Segments returns the job's result.
func (j *Job) Segments() []segment.Segment {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.segments
}

// FileData returns the pending input bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
