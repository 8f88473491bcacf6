package endpoints

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Loader manages endpoint configuration from endpoints.yaml
 * Provides in-memory lookup for fast access. Tenant and integration CRUD
 * live in the external dashboard; the file is the boundary handed to this
 * core.
 */

// Config represents the structure of endpoints.yaml
type Config struct {
	Endpoints []EndpointConfig `yaml:"endpoints"`
}

// EndpointConfig represents a single endpoint in the YAML file
type EndpointConfig struct {
	EndpointID     string              `yaml:"endpoint_id"`
	TenantID       string              `yaml:"tenant_id"`
	Name           string              `yaml:"name"`
	FilterConfigID string              `yaml:"filter_config_id"`
	Integrations   []IntegrationConfig `yaml:"integrations"`
}

// IntegrationConfig represents one destination of an endpoint
type IntegrationConfig struct {
	IntegrationID string `yaml:"integration_id"`
	Name          string `yaml:"name"`
	Platform      string `yaml:"platform"`
	WebhookURL    string `yaml:"webhook_url"`
	Enabled       *bool  `yaml:"enabled"`     // Default: true
	Priority      int    `yaml:"priority"`    // Default: 0
	MaxRetries    *int   `yaml:"max_retries"` // Default: 3
	SigningSecret string `yaml:"signing_secret"`
}

// Loader holds the loaded endpoints
type Loader struct {
	endpoints map[string]*Endpoint
}

// NewLoader creates a new endpoint loader
func NewLoader() *Loader {
	return &Loader{
		endpoints: make(map[string]*Endpoint),
	}
}

// Load reads and parses the endpoints YAML file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading endpoints file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing endpoints YAML: %w", err)
	}

	for _, ec := range config.Endpoints {
		endpoint := &Endpoint{
			EndpointID:     ec.EndpointID,
			TenantID:       ec.TenantID,
			Name:           ec.Name,
			FilterConfigID: ec.FilterConfigID,
			Integrations:   make([]Integration, 0, len(ec.Integrations)),
		}

		for _, ic := range ec.Integrations {
			enabled := true
			if ic.Enabled != nil {
				enabled = *ic.Enabled
			}
			maxRetries := 3
			if ic.MaxRetries != nil {
				maxRetries = *ic.MaxRetries
			}

			endpoint.Integrations = append(endpoint.Integrations, Integration{
				IntegrationID: ic.IntegrationID,
				Name:          ic.Name,
				Platform:      ic.Platform,
				WebhookURL:    ic.WebhookURL,
				Enabled:       enabled,
				Priority:      ic.Priority,
				MaxRetries:    maxRetries,
				SigningSecret: ic.SigningSecret,
			})
		}

		if err := endpoint.Validate(); err != nil {
			return fmt.Errorf("validating endpoint: %w", err)
		}

		l.endpoints[endpoint.EndpointID] = endpoint
	}

	return nil
}

// Get retrieves an endpoint by its ID
func (l *Loader) Get(endpointID string) (*Endpoint, error) {
	endpoint, exists := l.endpoints[endpointID]
	if !exists {
		return nil, fmt.Errorf("endpoint not found: %s", endpointID)
	}
	return endpoint, nil
}

// List returns all loaded endpoints
func (l *Loader) List() []*Endpoint {
	endpoints := make([]*Endpoint, 0, len(l.endpoints))
	for _, endpoint := range l.endpoints {
		endpoints = append(endpoints, endpoint)
	}
	return endpoints
}

// Exists checks if an endpoint ID exists
func (l *Loader) Exists(endpointID string) bool {
	_, exists := l.endpoints[endpointID]
	return exists
}
