package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/workers"
	"github.com/wsvendas/motostock/test/helpers"
	"github.com/wsvendas/motostock/test/mocks"
)

// fakeEnqueuer records enqueued task types
type fakeEnqueuer struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.types = append(f.types, task.Type())
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) enqueued() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.types...)
}

type fakeCatalog struct {
	invalidated int
	warmed      int
	err         error
}

func (f *fakeCatalog) InvalidateCatalog(ctx context.Context) error {
	f.invalidated++
	return f.err
}

func (f *fakeCatalog) Warm(ctx context.Context) error {
	f.warmed++
	return f.err
}

func TestAsyncInvalidator(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		enqueuer        *fakeEnqueuer
		setupMocks      func(*mocks.MockCatalogInvalidator)
		expectedQueued  int
		expectedFailure bool
	}{
		{
			name:           "queues_task",
			enqueuer:       &fakeEnqueuer{},
			setupMocks:     func(m *mocks.MockCatalogInvalidator) {},
			expectedQueued: 1,
		},
		{
			name:     "falls_back_when_queue_fails",
			enqueuer: &fakeEnqueuer{err: errors.New("redis down")},
			setupMocks: func(m *mocks.MockCatalogInvalidator) {
				m.EXPECT().InvalidateCatalog(gomock.Any()).Return(nil)
			},
		},
		{
			name: "falls_back_without_queue",
			setupMocks: func(m *mocks.MockCatalogInvalidator) {
				m.EXPECT().InvalidateCatalog(gomock.Any()).Return(errors.New("cache down"))
			},
			expectedFailure: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback := mocks.NewMockCatalogInvalidator(gomock.NewController(t))
			tt.setupMocks(fallback)

			var enq workers.Enqueuer
			if tt.enqueuer != nil {
				enq = tt.enqueuer
			}
			inv := workers.NewAsyncInvalidator(enq, fallback, helpers.TestLogger())

			err := inv.InvalidateCatalog(ctx)
			if tt.expectedFailure {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.enqueuer != nil {
				assert.Len(t, tt.enqueuer.enqueued(), tt.expectedQueued)
			}
		})
	}
}

func TestCatalogProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidate", func(t *testing.T) {
		cat := &fakeCatalog{}
		p := workers.NewCatalogProcessor(cat, helpers.TestLogger())

		require.NoError(t, p.Invalidate(ctx, workers.NewCatalogInvalidateTask()))
		assert.Equal(t, 1, cat.invalidated)
		assert.Zero(t, cat.warmed)
	})

	t.Run("refresh", func(t *testing.T) {
		cat := &fakeCatalog{}
		p := workers.NewCatalogProcessor(cat, helpers.TestLogger())

		require.NoError(t, p.Refresh(ctx, workers.NewCatalogRefreshTask()))
		assert.Equal(t, 1, cat.warmed)
	})

	t.Run("propagates_errors_for_retry", func(t *testing.T) {
		cat := &fakeCatalog{err: errors.New("redis down")}
		p := workers.NewCatalogProcessor(cat, helpers.TestLogger())

		assert.Error(t, p.Refresh(ctx, workers.NewCatalogRefreshTask()))
	})
}

func TestImportProcessor_ProcessImport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		setupFile     func(t *testing.T) string
		setupMocks    func(*mocks.MockImportService)
		expectedError bool
		skipRetry     bool
		fileRemoved   bool
	}{
		{
			name: "imports_and_removes_file",
			setupFile: func(t *testing.T) string {
				return helpers.CreateTempFile(t, t.TempDir(), []byte("xlsx-bytes"), ".xlsx")
			},
			setupMocks: func(m *mocks.MockImportService) {
				m.EXPECT().Import(gomock.Any(), []byte("xlsx-bytes")).
					Return(&domain.ImportResult{Created: 2}, nil)
			},
			fileRemoved: true,
		},
		{
			name: "missing_file_is_not_retried",
			setupFile: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "gone.xlsx")
			},
			setupMocks:    func(m *mocks.MockImportService) {},
			expectedError: true,
			skipRetry:     true,
		},
		{
			name: "unreadable_workbook_is_not_retried",
			setupFile: func(t *testing.T) string {
				return helpers.CreateTempFile(t, t.TempDir(), []byte("garbage"), ".xlsx")
			},
			setupMocks: func(m *mocks.MockImportService) {
				m.EXPECT().Import(gomock.Any(), gomock.Any()).Return(nil, errors.New("not a zip file"))
			},
			expectedError: true,
			skipRetry:     true,
			fileRemoved:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer := mocks.NewMockImportService(gomock.NewController(t))
			tt.setupMocks(importer)

			path := tt.setupFile(t)
			task, err := workers.NewImportTask(path, time.Now())
			require.NoError(t, err)

			err = workers.NewImportProcessor(importer, helpers.TestLogger()).ProcessImport(ctx, task)

			if tt.expectedError {
				require.Error(t, err)
				assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
			} else {
				require.NoError(t, err)
			}
			if tt.fileRemoved {
				_, statErr := os.Stat(path)
				assert.True(t, errors.Is(statErr, os.ErrNotExist))
			}
		})
	}
}

func TestImportProcessor_BadPayload(t *testing.T) {
	importer := mocks.NewMockImportService(gomock.NewController(t))
	p := workers.NewImportProcessor(importer, helpers.TestLogger())

	err := p.ProcessImport(context.Background(), asynq.NewTask(workers.TypeInventoryImport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNewImportTask(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task, err := workers.NewImportTask("/tmp/motostock/a.xlsx", at)
	require.NoError(t, err)

	assert.Equal(t, workers.TypeInventoryImport, task.Type())
	var payload workers.ImportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "/tmp/motostock/a.xlsx", payload.FilePath)
}

func TestCleanupProcessor_Sweep(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.xlsx")
	fresh := filepath.Join(dir, "fresh.xlsx")
	nested := filepath.Join(dir, "sub", "old.jpg")

	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0o755))
	for _, p := range []string{old, fresh, nested} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(nested, past, past))

	p := workers.NewCleanupProcessor(dir, 24*time.Hour, helpers.TestLogger())
	deleted, err := p.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.NoFileExists(t, old)
	assert.NoFileExists(t, nested)
	assert.FileExists(t, fresh)
}

func TestCleanupProcessor_MissingDir(t *testing.T) {
	p := workers.NewCleanupProcessor(filepath.Join(t.TempDir(), "nope"), time.Hour, helpers.TestLogger())

	assert.NoError(t, p.CleanupTempFiles(context.Background(), workers.NewCleanupTempFilesTask()))
}

func TestScheduler(t *testing.T) {
	t.Run("enqueues_on_schedule", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		s := workers.NewScheduler(enq, helpers.TestLogger())

		require.NoError(t, s.Schedule("@every 1s", "refresh", workers.NewCatalogRefreshTask))
		s.Start()
		defer s.Stop()

		helpers.AssertEventuallyWithTimeout(t, func() bool {
			return len(enq.enqueued()) > 0
		}, 3*time.Second, "refresh task was never enqueued")
		assert.Equal(t, workers.TypeCatalogRefresh, enq.enqueued()[0])
	})

	t.Run("empty_spec_disables_job", func(t *testing.T) {
		s := workers.NewScheduler(&fakeEnqueuer{}, helpers.TestLogger())

		require.NoError(t, s.Schedule("", "cleanup", workers.NewCleanupTempFilesTask))
		assert.Zero(t, s.Entries())
	})

	t.Run("rejects_invalid_spec", func(t *testing.T) {
		s := workers.NewScheduler(&fakeEnqueuer{}, helpers.TestLogger())

		assert.Error(t, s.Schedule("every tuesday", "cleanup", workers.NewCleanupTempFilesTask))
	})
}
