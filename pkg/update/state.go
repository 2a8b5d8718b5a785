package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/insanefusion/fusionenv/pkg/util/console"
	"github.com/insanefusion/fusionenv/pkg/util/files"
)

type state struct {
	Message     string    `json:"message"`
	LastChecked time.Time `json:"lastChecked"`
	Version     string    `json:"version"`
}

// loadState loads the update check state from disk, returning defaults if it does not exist
func loadState() (*state, error) {
	state := state{}

	p, err := statePath()
	if err != nil {
		return nil, err
	}

	exists, err := files.Exists(p)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &state, nil
	}
	text, err := os.ReadFile(p)
	if err != nil {
		console.Debugf("Failed to read %s: %s", p, err)
		return &state, nil
	}

	if err := json.Unmarshal(text, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// writeState saves the update check state to disk
func writeState(s *state) error {
	statePath, err := statePath()
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(statePath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(statePath, bytes, 0o600)
}

func statePath() (string, error) {
	dir, err := homedir.Expand("~/.config/fusionenv")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "update-check.json"), nil
}
