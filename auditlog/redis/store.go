package redis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/alert-relay/auditlog"
	"github.com/marcelsud/alert-relay/internal/sealed"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of auditlog.Store
 * Uses one hash per entry plus a sorted-set index scored by timestamp.
 * The request snapshot (headers, body) and the attempt list are sealed
 * before write and opened on read; routing metadata stays plaintext so
 * listing never needs the key.
 *
 * The log is a ring buffer: every insert trims the oldest entries beyond
 * the configured cap.
 */

const (
	entryPrefix = "reqlog" // Hash naming: reqlog:{entry_id}
	indexKey    = "reqlog:index"

	// DefaultCap bounds the log when the caller passes a non-positive cap
	DefaultCap = 1000
)

var ErrNotFound = errors.New("audit entry not found")

type Store struct {
	client *redis.Client
	box    *sealed.Box
	cap    int64
}

// NewStore creates a new Redis audit log store
func NewStore(client *redis.Client, box *sealed.Box, capacity int64) *Store {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Store{
		client: client,
		box:    box,
		cap:    capacity,
	}
}

// GetClient returns the underlying Redis client for advanced operations
func (s *Store) GetClient() *redis.Client {
	return s.client
}

// Insert stores a sealed entry, indexes it and trims the log to its cap
func (s *Store) Insert(ctx context.Context, e auditlog.Entry) error {
	fields, err := s.sealEntry(e)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, hashKey(e.ID), fields)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(e.Timestamp.UnixMilli()), Member: e.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing audit entry: %w", err)
	}

	return s.trim(ctx)
}

// UpdateAttempts replaces an entry's sealed attempt list and summary
func (s *Store) UpdateAttempts(ctx context.Context, id string, attempts []auditlog.Attempt, overall auditlog.OverallStatus, summary string) error {
	exists, err := s.client.Exists(ctx, hashKey(id)).Result()
	if err != nil {
		return fmt.Errorf("checking audit entry: %w", err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	attemptsEnc, err := s.sealJSON(attempts)
	if err != nil {
		return fmt.Errorf("sealing attempts: %w", err)
	}

	err = s.client.HSet(ctx, hashKey(id), map[string]interface{}{
		"attempts_enc":   attemptsEnc,
		"overall_status": overall.String(),
		"summary":        summary,
	}).Err()
	if err != nil {
		return fmt.Errorf("updating audit entry: %w", err)
	}
	return nil
}

// Get retrieves and opens an audit entry by ID
func (s *Store) Get(ctx context.Context, id string) (auditlog.Entry, error) {
	data, err := s.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return auditlog.Entry{}, fmt.Errorf("getting audit entry: %w", err)
	}
	if len(data) == 0 {
		return auditlog.Entry{}, ErrNotFound
	}
	return s.openEntry(data), nil
}

// List returns entries newest first, optionally restricted to a tenant
func (s *Store) List(ctx context.Context, tenantID string, limit int) ([]auditlog.Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	ids, err := s.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing audit entry ids: %w", err)
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, hashKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	entries := make([]auditlog.Entry, 0, limit)
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			continue
		}
		e := s.openEntry(data)
		if tenantID != "" && e.TenantID != tenantID {
			continue
		}
		entries = append(entries, e)
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// Count returns the number of indexed entries
func (s *Store) Count(ctx context.Context) (int64, error) {
	count, err := s.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("counting audit entries: %w", err)
	}
	return count, nil
}

// Delete removes an audit entry and its index membership
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, hashKey(id))
	pipe.ZRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting audit entry: %w", err)
	}
	return nil
}

// DeleteAll clears the whole log
func (s *Store) DeleteAll(ctx context.Context) error {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("listing audit entry ids: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, hashKey(id))
	}
	pipe.Del(ctx, indexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clearing audit log: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

// trim evicts the oldest entries past the cap
func (s *Store) trim(ctx context.Context) error {
	count, err := s.client.ZCard(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("counting audit entries: %w", err)
	}
	if count <= s.cap {
		return nil
	}

	evict, err := s.client.ZRange(ctx, indexKey, 0, count-s.cap-1).Result()
	if err != nil {
		return fmt.Errorf("selecting entries to evict: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range evict {
		pipe.Del(ctx, hashKey(id))
		pipe.ZRem(ctx, indexKey, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("evicting audit entries: %w", err)
	}
	return nil
}

// Helper functions

func hashKey(id string) string {
	return fmt.Sprintf("%s:%s", entryPrefix, id)
}

func (s *Store) sealEntry(e auditlog.Entry) (map[string]interface{}, error) {
	headersEnc, err := s.sealJSON(e.Headers)
	if err != nil {
		return nil, fmt.Errorf("sealing headers: %w", err)
	}
	bodyEnc, err := s.sealRaw(e.Body)
	if err != nil {
		return nil, fmt.Errorf("sealing body: %w", err)
	}
	attemptsEnc, err := s.sealJSON(e.Attempts)
	if err != nil {
		return nil, fmt.Errorf("sealing attempts: %w", err)
	}

	return map[string]interface{}{
		"id":             e.ID,
		"tenant_id":      e.TenantID,
		"endpoint_id":    e.EndpointID,
		"endpoint":       e.EndpointName,
		"timestamp":      e.Timestamp.UnixMilli(),
		"source_ip":      e.SourceIP,
		"method":         e.Method,
		"overall_status": e.Overall.String(),
		"summary":        e.Summary,
		"headers_enc":    headersEnc,
		"body_enc":       bodyEnc,
		"attempts_enc":   attemptsEnc,
	}, nil
}

/* openEntry reconstructs an entry from its hash. When any sealed blob fails
 * to open, only this entry degrades: plaintext metadata is kept and the
 * payload fields are replaced by a total_failure placeholder.
 */
func (s *Store) openEntry(data map[string]string) auditlog.Entry {
	timestamp, _ := strconv.ParseInt(data["timestamp"], 10, 64)
	e := auditlog.Entry{
		ID:           data["id"],
		TenantID:     data["tenant_id"],
		EndpointID:   data["endpoint_id"],
		EndpointName: data["endpoint"],
		Timestamp:    time.UnixMilli(timestamp),
		SourceIP:     data["source_ip"],
		Method:       data["method"],
		Overall:      auditlog.NewOverallStatus(data["overall_status"]),
		Summary:      data["summary"],
	}

	var headers map[string]string
	var attempts []auditlog.Attempt

	if err := s.openJSON(data["headers_enc"], &headers); err != nil {
		return degraded(e)
	}
	body, err := s.openRaw(data["body_enc"])
	if err != nil {
		return degraded(e)
	}
	if err := s.openJSON(data["attempts_enc"], &attempts); err != nil {
		return degraded(e)
	}

	e.Headers = headers
	e.Body = body
	e.Attempts = attempts
	return e
}

// degraded replaces an unreadable entry's payload with a placeholder
func degraded(e auditlog.Entry) auditlog.Entry {
	e.Overall = auditlog.OverallTotalFailure
	e.Summary = "entry unreadable: decryption failed"
	e.Headers = nil
	e.Body = nil
	e.Attempts = nil
	return e
}

func (s *Store) sealJSON(v interface{}) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding to JSON: %w", err)
	}
	return s.sealRaw(plaintext)
}

func (s *Store) sealRaw(plaintext []byte) (string, error) {
	blob, err := s.box.Seal(plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func (s *Store) openJSON(encoded string, v interface{}) error {
	plaintext, err := s.openRaw(encoded)
	if err != nil {
		return err
	}
	return json.Unmarshal(plaintext, v)
}

func (s *Store) openRaw(encoded string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 blob: %w", err)
	}
	return s.box.Open(blob)
}
