package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/alert-relay/fields"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of fields.ConfigRepository
 * Uses one hash per configuration plus a set of known IDs for listing.
 */

const (
	configPrefix   = "filterconfig" // Hash naming: filterconfig:{config_id}
	configIndexKey = "filterconfigs:ids"
)

var ErrNotFound = errors.New("filter config not found")

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis filter config repository
func NewRepository(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}

// NewRepositoryFromAddr connects a fresh client and verifies it
func NewRepositoryFromAddr(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return NewRepository(client), nil
}

// Insert stores a new filter configuration
func (r *Repository) Insert(ctx context.Context, config fields.FilterConfig) error {
	if err := r.write(ctx, config); err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, configIndexKey, config.ID).Err(); err != nil {
		return fmt.Errorf("indexing filter config: %w", err)
	}
	return nil
}

// Update replaces an existing filter configuration
func (r *Repository) Update(ctx context.Context, config fields.FilterConfig) error {
	exists, err := r.client.SIsMember(ctx, configIndexKey, config.ID).Result()
	if err != nil {
		return fmt.Errorf("checking filter config: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return r.write(ctx, config)
}

// Get retrieves a filter configuration by ID
func (r *Repository) Get(ctx context.Context, id string) (fields.FilterConfig, error) {
	data, err := r.client.HGetAll(ctx, fmt.Sprintf("%s:%s", configPrefix, id)).Result()
	if err != nil {
		return fields.FilterConfig{}, fmt.Errorf("getting filter config: %w", err)
	}
	if len(data) == 0 {
		return fields.FilterConfig{}, ErrNotFound
	}
	return unmarshalConfig(data)
}

// GetAll returns every stored filter configuration
func (r *Repository) GetAll(ctx context.Context) ([]fields.FilterConfig, error) {
	ids, err := r.client.SMembers(ctx, configIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing filter config ids: %w", err)
	}

	// Pipeline for efficient batch reads
	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, fmt.Sprintf("%s:%s", configPrefix, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("executing pipeline: %w", err)
	}

	configs := make([]fields.FilterConfig, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			continue
		}
		config, err := unmarshalConfig(data)
		if err != nil {
			continue
		}
		configs = append(configs, config)
	}
	return configs, nil
}

// Delete removes a filter configuration
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, fmt.Sprintf("%s:%s", configPrefix, id)).Err(); err != nil {
		return fmt.Errorf("deleting filter config: %w", err)
	}
	if err := r.client.SRem(ctx, configIndexKey, id).Err(); err != nil {
		return fmt.Errorf("unindexing filter config: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

func (r *Repository) write(ctx context.Context, config fields.FilterConfig) error {
	includedJSON, err := json.Marshal(config.IncludedFields)
	if err != nil {
		return fmt.Errorf("marshaling included fields: %w", err)
	}
	excludedJSON, err := json.Marshal(config.ExcludedFields)
	if err != nil {
		return fmt.Errorf("marshaling excluded fields: %w", err)
	}

	err = r.client.HSet(ctx, fmt.Sprintf("%s:%s", configPrefix, config.ID), map[string]interface{}{
		"id":              config.ID,
		"name":            config.Name,
		"included_fields": string(includedJSON),
		"excluded_fields": string(excludedJSON),
		"description":     config.Description,
		"sample_payload":  config.SamplePayload,
	}).Err()
	if err != nil {
		return fmt.Errorf("storing filter config: %w", err)
	}
	return nil
}

func unmarshalConfig(data map[string]string) (fields.FilterConfig, error) {
	var included, excluded []string
	if s := data["included_fields"]; s != "" {
		if err := json.Unmarshal([]byte(s), &included); err != nil {
			return fields.FilterConfig{}, fmt.Errorf("unmarshaling included fields: %w", err)
		}
	}
	if s := data["excluded_fields"]; s != "" {
		if err := json.Unmarshal([]byte(s), &excluded); err != nil {
			return fields.FilterConfig{}, fmt.Errorf("unmarshaling excluded fields: %w", err)
		}
	}

	return fields.FilterConfig{
		ID:             data["id"],
		Name:           data["name"],
		IncludedFields: included,
		ExcludedFields: excluded,
		Description:    data["description"],
		SamplePayload:  data["sample_payload"],
	}, nil
}
