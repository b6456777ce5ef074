package storage

import "go.uber.org/zap"

// Open builds the standard three-tier adapter: SQLite at dbPath, a
// session tier for the current session ID, and process memory. A
// durable tier that fails to open (read-only filesystem, locked
// database) is logged and skipped rather than surfaced; the adapter
// then runs on the remaining tiers.
func Open(dbPath string, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}

	var durable Tier
	if sqlite, err := NewSQLiteTier(dbPath); err != nil {
		log.Warn("durable store unavailable", zap.String("path", dbPath), zap.Error(err))
	} else {
		durable = sqlite
	}

	return NewAdapter(durable, NewSessionTier(SessionID()), log)
}
