// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task types
const (
	TypeCatalogInvalidate = "catalog:invalidate"
	TypeCatalogRefresh    = "catalog:refresh"
	TypeInventoryImport   = "inventory:import"
	TypeCleanupTempFiles  = "cleanup:temp_files"
)

// Queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Enqueuer is the subset of *asynq.Client used to schedule tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImportPayload points the worker at a spreadsheet saved by the API
type ImportPayload struct {
	FilePath    string    `json:"file_path"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewCatalogInvalidateTask drops every cached catalog page
func NewCatalogInvalidateTask() *asynq.Task {
	return asynq.NewTask(TypeCatalogInvalidate, nil,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second))
}

// NewCatalogRefreshTask rebuilds the cached catalog
func NewCatalogRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeCatalogRefresh, nil,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute))
}

// NewCleanupTempFilesTask removes stale uploads from the temp directory
func NewCleanupTempFilesTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupTempFiles, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute))
}

// NewImportTask imports the spreadsheet stored at path
func NewImportTask(path string, requestedAt time.Time) (*asynq.Task, error) {
	b, err := json.Marshal(ImportPayload{FilePath: path, RequestedAt: requestedAt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return asynq.NewTask(TypeInventoryImport, b,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour)), nil
}
