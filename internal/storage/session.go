package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SessionEnv names the environment variable that scopes the session
// tier. When unset, a generated ID makes the tier process-scoped.
const SessionEnv = "SNIP_SESSION"

// SessionTier is the session-scoped fallback tier: one JSON file per
// key under a session directory in the OS temp dir. Values survive
// process restarts only while the session ID stays the same.
type SessionTier struct {
	dir string
}

// NewSessionTier creates a tier scoped to the given session ID.
func NewSessionTier(sessionID string) *SessionTier {
	return &SessionTier{
		dir: filepath.Join(os.TempDir(), "snip-session-"+sessionID),
	}
}

// SessionID returns the ID from the environment, or a fresh one.
func SessionID() string {
	if id := os.Getenv(SessionEnv); id != "" {
		return id
	}
	return uuid.New().String()
}

// Name implements Tier.
func (s *SessionTier) Name() string { return "session" }

// Dir returns the session directory path.
func (s *SessionTier) Dir() string { return s.dir }

// Read implements Tier.
func (s *SessionTier) Read(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Write implements Tier.
func (s *SessionTier) Write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.keyPath(key), data, 0644)
}

func (s *SessionTier) keyPath(key string) string {
	// Keys are fixed identifiers, but guard against separators anyway.
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
