package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PersistentState is the on-disk resume cursor (persistent.json in
// spec.md §6): the state-key sequence to resume from, plus the
// lowest depth at which each element has been discovered so far.
type PersistentState struct {
	GameState  []int64          `json:"GameState"`
	BestDepths map[string]int   `json:"BestDepths"`
	RunID      string           `json:"RunID,omitempty"`
}

// LoadPersistentState reads path, returning (nil, nil) if it doesn't
// exist yet (a fresh run).
func LoadPersistentState(path string) (*PersistentState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("search: reading persistent state %q: %w", path, err)
	}

	var state PersistentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("search: decoding persistent state %q: %w", path, err)
	}
	return &state, nil
}

// SavePersistentState writes state to path atomically: marshal to a temp
// file in the same directory, then rename over the target, so a crash
// mid-write never leaves a corrupt persistent.json behind.
func SavePersistentState(path string, state *PersistentState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("search: encoding persistent state: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".persistent-*.json.tmp")
	if err != nil {
		return fmt.Errorf("search: creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("search: writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("search: closing temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("search: replacing persistent state %q: %w", path, err)
	}
	return nil
}
