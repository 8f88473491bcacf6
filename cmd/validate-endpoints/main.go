package main

import (
	"fmt"
	"os"

	"github.com/marcelsud/alert-relay/endpoints"
)

/* validate-endpoints - Standalone CLI tool to validate endpoints.yaml
 * Usage: go run cmd/validate-endpoints/main.go [endpoints.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	// Get endpoints file path from args or use default
	endpointsFile := "endpoints.yaml"
	if len(os.Args) > 1 {
		endpointsFile = os.Args[1]
	}

	// Print validation header
	fmt.Printf("Validating endpoints file: %s\n", endpointsFile)
	fmt.Println(string(make([]byte, 50))) // separator line

	// Create loader and attempt to load endpoints
	loader := endpoints.NewLoader()
	if err := loader.Load(endpointsFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Success - print loaded endpoints
	loaded := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d endpoint(s):\n", len(loaded))

	for i, endpoint := range loaded {
		fmt.Printf("\n%d. Endpoint: %s\n", i+1, endpoint.EndpointID)
		fmt.Printf("   Tenant:       %s\n", endpoint.TenantID)
		fmt.Printf("   Name:         %s\n", endpoint.Name)
		if endpoint.FilterConfigID != "" {
			fmt.Printf("   Filter Config: %s\n", endpoint.FilterConfigID)
		}
		fmt.Printf("   Integrations: %d\n", len(endpoint.Integrations))

		for _, integration := range endpoint.Integrations {
			state := "enabled"
			if !integration.Enabled {
				state = "disabled"
			}
			signed := ""
			if integration.SigningSecret != "" {
				signed = ", signed"
			}
			fmt.Printf("   - %s (%s, %s%s)\n", integration.Name, integration.Platform, state, signed)
			fmt.Printf("     Webhook URL: %s\n", integration.WebhookURL)
			fmt.Printf("     Priority: %d, Max Retries: %d\n", integration.Priority, integration.MaxRetries)
		}
	}

	fmt.Printf("\n✓ All endpoints are valid!\n")
	os.Exit(0)
}
