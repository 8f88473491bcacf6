//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/marcelsud/alert-relay/auditlog"
	"github.com/marcelsud/alert-relay/auditlog/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(id, tenantID string, timestamp time.Time) auditlog.Entry {
	return auditlog.Entry{
		ID:           id,
		TenantID:     tenantID,
		EndpointID:   "ep-1",
		EndpointName: "monitoring",
		Timestamp:    timestamp,
		SourceIP:     "203.0.113.9",
		Method:       "POST",
		Headers:      map[string]string{"Content-Type": "application/xml"},
		Body:         []byte("<notification><severity>high</severity></notification>"),
		Overall:      auditlog.OverallSuccess,
		Summary:      "relayed to 1 integration(s)",
		Attempts: []auditlog.Attempt{
			{
				IntegrationID:   "int-1",
				IntegrationName: "ops-slack",
				Platform:        "slack",
				WebhookURL:      "https://hooks.example.com/T000/B000",
				Status:          auditlog.AttemptSuccess,
				OutgoingPayload: []byte(`{"text":"hello"}`),
				Timestamp:       timestamp,
			},
		},
	}
}

func TestStore_SealedRoundTrip_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	store := redis.NewStore(client, CreateTestBox(t), 100)
	defer store.Close(ctx)

	e := testEntry("req-1", "tenant-1", time.Now())
	require.NoError(t, store.Insert(ctx, e))

	got, err := store.Get(ctx, "req-1")
	require.NoError(t, err)

	assert.Equal(t, e.TenantID, got.TenantID)
	assert.Equal(t, e.Headers, got.Headers)
	assert.Equal(t, e.Body, got.Body)
	require.Len(t, got.Attempts, 1)
	assert.Equal(t, "int-1", got.Attempts[0].IntegrationID)
	assert.Equal(t, auditlog.AttemptSuccess, got.Attempts[0].Status)
	assert.Equal(t, e.Attempts[0].OutgoingPayload, got.Attempts[0].OutgoingPayload)

	// The snapshot never touches Redis in the clear
	raw, err := client.HGetAll(ctx, "reqlog:req-1").Result()
	require.NoError(t, err)
	for _, v := range raw {
		assert.NotContains(t, v, "severity")
		assert.NotContains(t, v, "hooks.example.com")
	}
}

func TestStore_TrimToCap_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	store := redis.NewStore(client, CreateTestBox(t), 5)
	defer store.Close(ctx)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		e := testEntry(fmt.Sprintf("req-%d", i), "tenant-1", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Insert(ctx, e))
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// The oldest entries were evicted, hashes included
	_, err = store.Get(ctx, "req-0")
	assert.ErrorIs(t, err, redis.ErrNotFound)

	got, err := store.Get(ctx, "req-9")
	require.NoError(t, err)
	assert.Equal(t, "req-9", got.ID)
}

func TestStore_DecryptFailureDegradesEntry_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	writer := redis.NewStore(client, CreateTestBox(t), 100)
	defer writer.Close(ctx)

	require.NoError(t, writer.Insert(ctx, testEntry("req-old", "tenant-1", time.Now().Add(-time.Minute))))

	// A store opened with a different key cannot read the old blobs
	reader := redis.NewStore(client, CreateTestBox(t), 100)
	require.NoError(t, reader.Insert(ctx, testEntry("req-new", "tenant-1", time.Now())))

	old, err := reader.Get(ctx, "req-old")
	require.NoError(t, err)
	assert.Equal(t, auditlog.OverallTotalFailure, old.Overall)
	assert.Contains(t, old.Summary, "decryption failed")
	assert.Nil(t, old.Headers)
	assert.Nil(t, old.Body)
	assert.Nil(t, old.Attempts)
	// Plaintext metadata survives
	assert.Equal(t, "tenant-1", old.TenantID)

	// Only the unreadable entry degrades
	fresh, err := reader.Get(ctx, "req-new")
	require.NoError(t, err)
	assert.Equal(t, auditlog.OverallSuccess, fresh.Overall)
	assert.NotNil(t, fresh.Attempts)
}

func TestStore_ListByTenant_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	store := redis.NewStore(client, CreateTestBox(t), 100)
	defer store.Close(ctx)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, store.Insert(ctx, testEntry("req-a1", "tenant-a", base)))
	require.NoError(t, store.Insert(ctx, testEntry("req-b1", "tenant-b", base.Add(time.Minute))))
	require.NoError(t, store.Insert(ctx, testEntry("req-a2", "tenant-a", base.Add(2*time.Minute))))

	entries, err := store.List(ctx, "tenant-a", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "req-a2", entries[0].ID)
	assert.Equal(t, "req-a1", entries[1].ID)

	all, err := store.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_UpdateAttempts_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	store := redis.NewStore(client, CreateTestBox(t), 100)
	defer store.Close(ctx)

	e := testEntry("req-1", "tenant-1", time.Now())
	require.NoError(t, store.Insert(ctx, e))

	e.Attempts[0].Status = auditlog.AttemptFailedRelay
	e.Attempts[0].ErrorDetails = "unexpected status 503"
	require.NoError(t, store.UpdateAttempts(ctx, "req-1", e.Attempts, auditlog.OverallTotalFailure, "relayed to 0 of 1 integration(s)"))

	got, err := store.Get(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, auditlog.OverallTotalFailure, got.Overall)
	assert.Equal(t, auditlog.AttemptFailedRelay, got.Attempts[0].Status)
	assert.Equal(t, "unexpected status 503", got.Attempts[0].ErrorDetails)

	err = store.UpdateAttempts(ctx, "req-missing", nil, auditlog.OverallTotalFailure, "")
	assert.ErrorIs(t, err, redis.ErrNotFound)
}

func TestStore_DeleteAll_Integration(t *testing.T) {
	ctx := context.Background()

	redisContainer, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	client := CreateTestClient(t, redisContainer.Addr)
	store := redis.NewStore(client, CreateTestBox(t), 100)
	defer store.Close(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(ctx, testEntry(fmt.Sprintf("req-%d", i), "tenant-1", time.Now())))
	}

	require.NoError(t, store.DeleteAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
