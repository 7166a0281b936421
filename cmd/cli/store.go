package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// tokenFile is what login leaves behind for later commands. It never holds
// key material.
type tokenFile struct {
	Identifier   string    `json:"identifier"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

var errLoginRequired = errors.New("no valid token (login required)")

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "zk-journal")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "zk-journal")
}

type fileStore struct{ dir string }

func (s fileStore) tokenPath() string { return filepath.Join(s.dir, "token.json") }

func (s fileStore) save(tf tokenFile) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath(), b, 0o600)
}

func (s fileStore) load() (tokenFile, error) {
	var tf tokenFile
	b, err := os.ReadFile(s.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return tf, errLoginRequired
	}
	if err != nil {
		return tf, err
	}
	if err := json.Unmarshal(b, &tf); err != nil {
		return tf, err
	}
	if tf.RefreshToken == "" {
		return tf, errLoginRequired
	}
	return tf, nil
}

// access returns a live access token, or errLoginRequired.
func (s fileStore) access() (tokenFile, error) {
	tf, err := s.load()
	if err != nil {
		return tf, err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return tf, fmt.Errorf("%w: access token expired, run refresh", errLoginRequired)
	}
	return tf, nil
}

func (s fileStore) clear() error {
	err := os.Remove(s.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
