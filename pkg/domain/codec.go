package domain

import (
	"encoding/json"
	"fmt"
)

// MarshalProgress encodes a record in the on-disk format (2-space indented JSON).
func MarshalProgress(p *SetupProgress) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}
	return data, nil
}

// UnmarshalProgress decodes a record and normalizes nil collections.
// Decoding failures wrap ErrInvalidProgress.
func UnmarshalProgress(data []byte) (*SetupProgress, error) {
	var p SetupProgress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgress, err)
	}
	p.Normalize()
	return &p, nil
}
