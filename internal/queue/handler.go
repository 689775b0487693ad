// Package queue consumes parse jobs from AMQP and publishes their results.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/storage"
	"github.com/jonathan/resume-parser/internal/types"
)

// Result statuses.
const (
	StatusDone     = "done"
	StatusFailed   = "failed"
	StatusRejected = "rejected"
)

// Job asks for one stored document to be parsed.
type Job struct {
	JobID     string `json:"job_id"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
}

// Result is published for every accepted job.
type Result struct {
	JobID     string              `json:"job_id"`
	Status    string              `json:"status"`
	Record    *types.ResumeRecord `json:"record,omitempty"`
	ResultKey string              `json:"result_key,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// ObjectStore reads uploaded documents and stores parsed records.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Processor parses a document held in memory.
type Processor interface {
	ProcessBytes(ctx context.Context, filename string, data []byte) (*types.ResumeRecord, error)
}

// Handler runs jobs independently of the transport.
type Handler struct {
	Objects   ObjectStore
	Processor Processor
	// Timeout bounds a single job; zero means no limit.
	Timeout time.Duration
	// StoreResults writes each record to the object store next to the upload.
	StoreResults bool
}

// DecodeJob parses and checks a job message.
func DecodeJob(body []byte) (*Job, error) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("invalid job message: %w", err)
	}
	if job.JobID == "" || job.ObjectKey == "" {
		return nil, errors.New("job message requires job_id and object_key")
	}
	if job.FileName == "" {
		job.FileName = job.ObjectKey
	}
	return &job, nil
}

// Handle runs one job message. A malformed message yields StatusRejected; any failure after
// decoding yields StatusFailed with the error text.
func (h *Handler) Handle(ctx context.Context, body []byte) Result {
	job, err := DecodeJob(body)
	if err != nil {
		log.Warn().Err(err).Msg("rejecting job message")
		return Result{Status: StatusRejected, Error: err.Error()}
	}

	ctx = logging.WithRequestID(ctx, job.JobID)
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	logger := logging.Ctx(ctx)

	data, err := h.Objects.Get(ctx, job.ObjectKey)
	if err != nil {
		logger.Error().Err(err).Str("object_key", job.ObjectKey).Msg("failed to fetch document")
		return failed(job, err)
	}

	rec, err := h.Processor.ProcessBytes(ctx, job.FileName, data)
	if err != nil {
		logger.Error().Err(err).Str("file", job.FileName).Msg("failed to parse document")
		return failed(job, err)
	}

	result := Result{JobID: job.JobID, Status: StatusDone, Record: rec}
	if h.StoreResults {
		key := storage.ResultKey(job.JobID)
		payload, err := json.Marshal(rec)
		if err == nil {
			err = h.Objects.Put(ctx, key, payload, "application/json")
		}
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to store record")
		} else {
			result.ResultKey = key
		}
	}
	logger.Info().Str("file", job.FileName).Msg("job done")
	return result
}

func failed(job *Job, err error) Result {
	return Result{JobID: job.JobID, Status: StatusFailed, Error: err.Error()}
}
