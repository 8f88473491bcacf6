package fields

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

/* Service represents the business logic layer for filter configurations.
 * Uses pointer semantics as it's an API, not data.
 */

// ConfigUseCase defines the operations the dashboard needs for filter configs
type ConfigUseCase interface {
	Create(ctx context.Context, config FilterConfig) (FilterConfig, error)
	Get(ctx context.Context, id string) (FilterConfig, error)
	List(ctx context.Context) ([]FilterConfig, error)
	Update(ctx context.Context, config FilterConfig) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Repo ConfigRepository
}

// NewService creates a new filter configuration service
func NewService(repo ConfigRepository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create validates and stores a new filter configuration
func (s *Service) Create(ctx context.Context, config FilterConfig) (FilterConfig, error) {
	if err := config.Validate(); err != nil {
		return FilterConfig{}, fmt.Errorf("validating filter config: %w", err)
	}
	config.ID = uuid.New().String()
	if err := s.Repo.Insert(ctx, config); err != nil {
		return FilterConfig{}, fmt.Errorf("storing filter config: %w", err)
	}
	return config, nil
}

// Get retrieves a filter configuration by ID
func (s *Service) Get(ctx context.Context, id string) (FilterConfig, error) {
	config, err := s.Repo.Get(ctx, id)
	if err != nil {
		return FilterConfig{}, fmt.Errorf("getting filter config: %w", err)
	}
	return config, nil
}

// List returns all filter configurations
func (s *Service) List(ctx context.Context) ([]FilterConfig, error) {
	configs, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing filter configs: %w", err)
	}
	return configs, nil
}

// Update validates and replaces an existing filter configuration
func (s *Service) Update(ctx context.Context, config FilterConfig) error {
	if config.ID == "" {
		return fmt.Errorf("filter config id cannot be empty")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("validating filter config: %w", err)
	}
	if err := s.Repo.Update(ctx, config); err != nil {
		return fmt.Errorf("updating filter config: %w", err)
	}
	return nil
}

// Delete removes a filter configuration
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting filter config: %w", err)
	}
	return nil
}
