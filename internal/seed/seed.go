// Package seed loads the read-only sample data snapshot.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/studymind/internal/models"
)

//go:embed seed.yaml
var builtin []byte

// Builtin returns the embedded sample snapshot.
func Builtin() (*models.Snapshot, error) {
	return Decode(bytes.NewReader(builtin))
}

// Load reads a snapshot from path, or the embedded one when path is empty.
func Load(path string) (*models.Snapshot, error) {
	if path == "" {
		return Builtin()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses and validates a YAML snapshot.
func Decode(r io.Reader) (*models.Snapshot, error) {
	var snap models.Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
