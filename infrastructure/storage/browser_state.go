package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

const (
	defaultStateDir  = ".ui_automation"
	browserStateFile = "state.json"
)

// BrowserState persists cookies and local storage between playwright sessions
type BrowserState struct {
	statePath string
}

// NewBrowserState - creates state storage under dir, or ~/.ui_automation when dir is empty
func NewBrowserState(dir string) (*BrowserState, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		dir = filepath.Join(homeDir, defaultStateDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &BrowserState{
		statePath: filepath.Join(dir, browserStateFile),
	}, nil
}

// Path - returns the file the browser context writes its state to
func (s *BrowserState) Path() string {
	return s.statePath
}

// Load - loads saved state; returns nil when nothing was saved yet
func (s *BrowserState) Load() (*playwright.OptionalStorageState, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state playwright.StorageState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse browser state %s: %w", s.statePath, err)
	}

	return state.ToOptionalStorageState(), nil
}

// Clear - removes saved state
func (s *BrowserState) Clear() error {
	if err := os.Remove(s.statePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
