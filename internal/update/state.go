package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// appState is UI state kept outside the entity store.
type appState struct {
	HasCompletedOnboarding bool `json:"has_completed_onboarding"`
}

func (m *Model) persistAppState(state appState) error {
	if strings.TrimSpace(m.stateFilePath) == "" {
		return nil
	}
	dir := filepath.Dir(m.stateFilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.stateFilePath + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.stateFilePath)
}

func loadAppState(path string) (appState, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return appState{}, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return appState{}, nil
		}
		return appState{}, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return appState{}, nil
	}
	var state appState
	if err := json.Unmarshal(raw, &state); err != nil {
		return appState{}, err
	}
	return state, nil
}
