// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sweep

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// WriteRunFile saves the run telemetry and results to a YAML file so a
// sweep can be audited (which query earned which identifiers) without
// re-querying the API.
func WriteRunFile(path string, run Run) error {
	data, err := yaml.Marshal(&run)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var run Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &run, nil
}
