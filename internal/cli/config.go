package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionID   string
	SessionFile string
	Output      string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("TILETALLY_SERVER", "http://localhost:8080"),
		SessionID:   os.Getenv("TILETALLY_SESSION"),
		SessionFile: getEnvOrDefault("TILETALLY_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
	}
}

// LoadSessionID loads the active session ID from file if not already set
func (c *Config) LoadSessionID() error {
	if c.SessionID != "" {
		return nil
	}

	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No session file is fine
		}
		return err
	}

	c.SessionID = strings.TrimSpace(string(data))
	return nil
}

// SaveSessionID saves the active session ID to the session file
func (c *Config) SaveSessionID(id string) error {
	c.SessionID = id

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, []byte(id), 0600)
}

// RequireSessionID returns the active session ID or an error telling
// the user how to pick one
func (c *Config) RequireSessionID() (string, error) {
	if c.SessionID == "" {
		return "", errors.New("no active session: run 'tiletally session create' or pass --session")
	}
	return c.SessionID, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tiletally/session"
	}
	return filepath.Join(home, ".tiletally", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
