package queue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/alert-relay/queue"
	"github.com/marcelsud/alert-relay/queue/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testIntegration() queue.IntegrationRef {
	return queue.IntegrationRef{
		IntegrationID: "int-1",
		Name:          "ops-slack",
		Platform:      "slack",
		WebhookURL:    "https://hooks.example.com/T000/B000",
	}
}

func testEndpoint() queue.EndpointRef {
	return queue.EndpointRef{
		EndpointID: "ep-1",
		TenantID:   "tenant-1",
		Name:       "monitoring",
	}
}

func TestEnqueue(t *testing.T) {
	t.Run("stores a pending delivery with defaults", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		var inserted queue.Delivery
		store.On("Insert", mock.Anything, mock.AnythingOfType("queue.Delivery")).
			Run(func(args mock.Arguments) {
				inserted = args.Get(1).(queue.Delivery)
			}).
			Return(nil)

		d, err := service.Enqueue(context.Background(), testIntegration(), testEndpoint(), "req-1", []byte(`{"text":"hi"}`), "application/json", 5, -1)
		require.NoError(t, err)

		assert.NotEmpty(t, d.ID)
		assert.Equal(t, queue.Pending, d.Status)
		assert.Equal(t, 5, d.Priority)
		assert.Equal(t, 0, d.RetryCount)
		assert.Equal(t, queue.DefaultMaxRetries, d.MaxRetries)
		assert.True(t, d.NextRetryAt.IsZero())
		assert.Equal(t, d, inserted)
	})

	t.Run("rejects empty webhook URL", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		integration := testIntegration()
		integration.WebhookURL = ""

		_, err := service.Enqueue(context.Background(), integration, testEndpoint(), "req-1", nil, "application/json", 0, 3)
		assert.Error(t, err)
	})
}

func TestProcessBatchPaused(t *testing.T) {
	store := mocks.NewStore(t)
	service := queue.NewService(store, mocks.NewDispatcher(t))

	service.Pause()
	result, err := service.ProcessBatch(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, queue.BatchResult{}, result)
	store.AssertNotCalled(t, "ClaimBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessBatchSuccess(t *testing.T) {
	store := mocks.NewStore(t)
	dispatcher := mocks.NewDispatcher(t)
	recorder := mocks.NewOutcomeRecorder(t)

	service := queue.NewService(store, dispatcher)
	service.Outcomes = recorder
	service.CompletedTTL = time.Hour

	d := queue.Delivery{
		ID:          "d-1",
		Status:      queue.Pending,
		MaxRetries:  3,
		Integration: testIntegration(),
		Endpoint:    testEndpoint(),
		RequestID:   "req-1",
	}

	store.On("ClaimBatch", mock.Anything, 10, mock.AnythingOfType("time.Time")).Return([]queue.Delivery{d}, nil)

	var updates []queue.Delivery
	store.On("Update", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(1).(queue.Delivery))
		}).
		Return(nil)
	store.On("SetTTL", mock.Anything, "d-1", time.Hour).Return(nil)

	dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Return(queue.DispatchResult{StatusCode: 200, Body: "ok"}, nil)

	var outcome queue.Outcome
	recorder.On("RecordOutcome", mock.Anything, mock.AnythingOfType("queue.Outcome")).
		Run(func(args mock.Arguments) {
			outcome = args.Get(1).(queue.Outcome)
		}).
		Return(nil)

	result, err := service.ProcessBatch(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Claimed)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 0, result.Retried)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, updates, 2)
	assert.Equal(t, queue.Processing, updates[0].Status)
	assert.False(t, updates[0].LastAttemptAt.IsZero())
	assert.Equal(t, queue.Completed, updates[1].Status)
	assert.Equal(t, 200, updates[1].ResponseStatus)

	assert.Equal(t, "req-1", outcome.RequestID)
	assert.Equal(t, "int-1", outcome.IntegrationID)
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, 200, outcome.ResponseStatus)
}

func TestProcessBatchSchedulesRetry(t *testing.T) {
	store := mocks.NewStore(t)
	dispatcher := mocks.NewDispatcher(t)
	service := queue.NewService(store, dispatcher)

	d := queue.Delivery{
		ID:          "d-1",
		Status:      queue.Pending,
		RetryCount:  0,
		MaxRetries:  3,
		Integration: testIntegration(),
		Endpoint:    testEndpoint(),
	}

	store.On("ClaimBatch", mock.Anything, 1, mock.AnythingOfType("time.Time")).Return([]queue.Delivery{d}, nil)

	var updates []queue.Delivery
	store.On("Update", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(1).(queue.Delivery))
		}).
		Return(nil)

	dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Return(queue.DispatchResult{StatusCode: 500, Body: "boom"}, errors.New("unexpected status 500"))

	before := time.Now()
	result, err := service.ProcessBatch(context.Background(), 1)
	after := time.Now()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Claimed)
	assert.Equal(t, 1, result.Retried)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, updates, 2)
	rescheduled := updates[1]
	assert.Equal(t, queue.Pending, rescheduled.Status)
	assert.Equal(t, 1, rescheduled.RetryCount)
	assert.Contains(t, rescheduled.ErrorDetails, "unexpected status 500")

	// First retry waits one minute, the first backoff table entry
	assert.False(t, rescheduled.NextRetryAt.Before(before.Add(1*time.Minute)))
	assert.False(t, rescheduled.NextRetryAt.After(after.Add(1*time.Minute)))
}

func TestProcessBatchExhaustsRetries(t *testing.T) {
	store := mocks.NewStore(t)
	dispatcher := mocks.NewDispatcher(t)
	recorder := mocks.NewOutcomeRecorder(t)

	service := queue.NewService(store, dispatcher)
	service.Outcomes = recorder

	d := queue.Delivery{
		ID:          "d-1",
		Status:      queue.Pending,
		RetryCount:  3,
		MaxRetries:  3,
		Integration: testIntegration(),
		Endpoint:    testEndpoint(),
		RequestID:   "req-1",
	}

	store.On("ClaimBatch", mock.Anything, 1, mock.AnythingOfType("time.Time")).Return([]queue.Delivery{d}, nil)

	var updates []queue.Delivery
	store.On("Update", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(1).(queue.Delivery))
		}).
		Return(nil)

	dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("queue.Delivery")).
		Return(queue.DispatchResult{StatusCode: 503, Body: "unavailable"}, errors.New("unexpected status 503"))

	var outcome queue.Outcome
	recorder.On("RecordOutcome", mock.Anything, mock.AnythingOfType("queue.Outcome")).
		Run(func(args mock.Arguments) {
			outcome = args.Get(1).(queue.Outcome)
		}).
		Return(nil)

	result, err := service.ProcessBatch(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)

	failed := updates[len(updates)-1]
	assert.Equal(t, queue.Failed, failed.Status)
	assert.Equal(t, 3, failed.RetryCount)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, 503, outcome.ResponseStatus)
}

func TestRetry(t *testing.T) {
	t.Run("resets a failed delivery to pending", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		store.On("Get", mock.Anything, "d-1").Return(queue.Delivery{
			ID:         "d-1",
			Status:     queue.Failed,
			RetryCount: 3,
			MaxRetries: 3,
		}, nil)

		var updated queue.Delivery
		store.On("Update", mock.Anything, mock.AnythingOfType("queue.Delivery")).
			Run(func(args mock.Arguments) {
				updated = args.Get(1).(queue.Delivery)
			}).
			Return(nil)

		err := service.Retry(context.Background(), "d-1")
		require.NoError(t, err)

		assert.Equal(t, queue.Pending, updated.Status)
		assert.Equal(t, 0, updated.RetryCount)
		assert.True(t, updated.NextRetryAt.IsZero())
		assert.Empty(t, updated.ErrorDetails)
	})

	t.Run("rejects non-failed deliveries", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		store.On("Get", mock.Anything, "d-1").Return(queue.Delivery{ID: "d-1", Status: queue.Completed}, nil)

		err := service.Retry(context.Background(), "d-1")
		assert.Error(t, err)
	})
}

func TestCancel(t *testing.T) {
	t.Run("removes a pending delivery", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		store.On("Get", mock.Anything, "d-1").Return(queue.Delivery{ID: "d-1", Status: queue.Pending}, nil)
		store.On("Delete", mock.Anything, "d-1").Return(nil)

		assert.NoError(t, service.Cancel(context.Background(), "d-1"))
	})

	t.Run("rejects completed deliveries", func(t *testing.T) {
		store := mocks.NewStore(t)
		service := queue.NewService(store, mocks.NewDispatcher(t))

		store.On("Get", mock.Anything, "d-1").Return(queue.Delivery{ID: "d-1", Status: queue.Completed}, nil)

		err := service.Cancel(context.Background(), "d-1")
		assert.Error(t, err)
		store.AssertNotCalled(t, "Delete", mock.Anything, "d-1")
	})
}

func TestBulkAction(t *testing.T) {
	store := mocks.NewStore(t)
	service := queue.NewService(store, mocks.NewDispatcher(t))

	store.On("Delete", mock.Anything, "d-1").Return(nil)
	store.On("Delete", mock.Anything, "d-2").Return(errors.New("delivery not found"))
	store.On("Delete", mock.Anything, "d-3").Return(nil)

	result := service.BulkAction(context.Background(), []string{"d-1", "d-2", "d-3"}, queue.BulkDelete)

	assert.Equal(t, []string{"d-1", "d-3"}, result.Succeeded)
	require.Contains(t, result.Failed, "d-2")
	assert.Contains(t, result.Failed["d-2"], "delivery not found")
}

func TestBulkActionUnknownKind(t *testing.T) {
	store := mocks.NewStore(t)
	service := queue.NewService(store, mocks.NewDispatcher(t))

	result := service.BulkAction(context.Background(), []string{"d-1"}, queue.BulkActionKind("explode"))

	assert.Empty(t, result.Succeeded)
	assert.Contains(t, result.Failed["d-1"], "unknown bulk action")
}

func TestStats(t *testing.T) {
	store := mocks.NewStore(t)
	service := queue.NewService(store, mocks.NewDispatcher(t))

	store.On("CountByStatus", mock.Anything).Return(map[string]int64{
		"pending":    4,
		"processing": 1,
		"completed":  10,
		"failed":     2,
	}, nil)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(17), stats.Total)
	assert.Equal(t, int64(4), stats.StatusCounts["pending"])
	assert.True(t, stats.Enabled)
}

func TestPauseResume(t *testing.T) {
	service := queue.NewService(mocks.NewStore(t), mocks.NewDispatcher(t))

	assert.True(t, service.Enabled())
	service.Pause()
	assert.False(t, service.Enabled())
	service.Resume()
	assert.True(t, service.Enabled())
}
