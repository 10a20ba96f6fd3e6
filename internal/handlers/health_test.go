package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wsvendas/motostock/internal/handlers"
	"github.com/wsvendas/motostock/test/helpers"
	"github.com/wsvendas/motostock/test/mocks"
)

type stubInspector struct {
	err       error
	noWorkers bool
}

func (s stubInspector) Queues() ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"critical", "default"}, nil
}

func (s stubInspector) GetQueueInfo(queue string) (*asynq.QueueInfo, error) {
	return &asynq.QueueInfo{Queue: queue, Size: 2, Pending: 2}, nil
}

func (s stubInspector) Servers() ([]*asynq.ServerInfo, error) {
	if s.noWorkers {
		return nil, nil
	}
	return []*asynq.ServerInfo{{Host: "worker-1"}}, nil
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		dbErr          error
		dbHealth       map[string]any
		cacheErr       error
		inspector      handlers.QueueInspector
		expectedStatus int
		validateBody   func(*testing.T, handlers.HealthStatus)
	}{
		{
			name:           "all_healthy",
			inspector:      stubInspector{},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "healthy", hs.Status)
				assert.Contains(t, hs.Services, "database")
				assert.Contains(t, hs.Services, "redis")
				assert.Contains(t, hs.Services["asynq"].Details, "queues")
				assert.EqualValues(t, 4, hs.Services["asynq"].Details["backlog"])
			},
		},
		{
			name:           "schema_missing",
			dbHealth:       map[string]any{"status": "unmigrated"},
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "unmigrated", hs.Services["database"].Status)
				assert.Contains(t, hs.Services["database"].Message, "migrate up")
			},
		},
		{
			name:           "tasks_without_workers",
			inspector:      stubInspector{noWorkers: true},
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "stalled", hs.Services["asynq"].Status)
			},
		},
		{
			name:           "database_down",
			dbErr:          errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "degraded", hs.Status)
				assert.Equal(t, "unhealthy", hs.Services["database"].Status)
				assert.NotContains(t, hs.Services, "asynq")
			},
		},
		{
			name:           "redis_down",
			cacheErr:       errors.New("dial tcp: timeout"),
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "unhealthy", hs.Services["redis"].Status)
			},
		},
		{
			name:           "queue_inspector_failing",
			inspector:      stubInspector{err: errors.New("NOAUTH")},
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, hs handlers.HealthStatus) {
				assert.Equal(t, "unhealthy", hs.Services["asynq"].Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := mocks.NewMockDatabase(ctrl)
			cache := mocks.NewMockCacheRepository(ctrl)

			db.EXPECT().Ping(gomock.Any()).Return(tt.dbErr)
			if tt.dbErr == nil {
				stats := tt.dbHealth
				if stats == nil {
					stats = map[string]any{"status": "healthy", "total_connections": 4}
				}
				db.EXPECT().Health(gomock.Any()).Return(stats)
			}
			cache.EXPECT().Ping(gomock.Any()).Return(tt.cacheErr)

			h := handlers.NewHealthHandler(db, cache, tt.inspector, "1.0.0", "test", helpers.TestLogger())
			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var hs handlers.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hs))
			assert.Equal(t, "1.0.0", hs.Version)
			tt.validateBody(t, hs)
		})
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("ready_without_cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := mocks.NewMockDatabase(ctrl)
		db.EXPECT().Ping(gomock.Any()).Return(nil)

		h := handlers.NewHealthHandler(db, nil, nil, "1.0.0", "test", helpers.TestLogger())
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ready":true,"details":{"database":"ready"}}`, w.Body.String())
	})

	t.Run("not_ready_when_redis_down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := mocks.NewMockDatabase(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)
		db.EXPECT().Ping(gomock.Any()).Return(nil)
		cache.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))

		h := handlers.NewHealthHandler(db, cache, nil, "1.0.0", "test", helpers.TestLogger())
		w := httptest.NewRecorder()
		h.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
