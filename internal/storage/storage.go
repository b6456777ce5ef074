package storage

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Tier is a single keyed storage backend. Implementations hold raw JSON
// bytes; they never interpret the value.
type Tier interface {
	// Name identifies the tier in log output.
	Name() string
	// Read returns the stored bytes for key. found is false when the key
	// has never been written to this tier.
	Read(key string) (data []byte, found bool, err error)
	// Write stores the bytes for key. A tier attempt is all-or-nothing:
	// on error the tier holds its previous value for the key.
	Write(key string, data []byte) error
}

// Adapter provides uniform get/set of named JSON values across up to
// three fallback tiers: a durable store, a session-scoped store, and an
// in-process memory map. Reads return the first successfully parsed
// value; writes fall through until a tier accepts, and the memory map
// accepts unconditionally, so a write can never fail. Either backing
// tier may be nil when unavailable.
type Adapter struct {
	durable Tier
	session Tier
	memory  map[string][]byte
	log     *zap.Logger
}

// NewAdapter creates an Adapter over the given tiers. durable and
// session may be nil. log may be nil for a no-op logger.
func NewAdapter(durable, session Tier, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		durable: durable,
		session: session,
		memory:  make(map[string][]byte),
		log:     log,
	}
}

// Read unmarshals the stored value for key into v, trying the durable
// tier first, then the session tier, then process memory. Malformed
// stored JSON is treated as absent, not as an error: the next tier is
// consulted and the caller sees only the found flag.
func (a *Adapter) Read(key string, v any) bool {
	for _, t := range []Tier{a.durable, a.session} {
		if t == nil {
			continue
		}
		data, found, err := t.Read(key)
		if err != nil {
			a.log.Warn("storage read failed",
				zap.String("tier", t.Name()), zap.String("key", key), zap.Error(err))
			continue
		}
		if !found {
			continue
		}
		if err := json.Unmarshal(data, v); err != nil {
			a.log.Warn("malformed stored value",
				zap.String("tier", t.Name()), zap.String("key", key), zap.Error(err))
			continue
		}
		return true
	}

	if data, ok := a.memory[key]; ok {
		if err := json.Unmarshal(data, v); err == nil {
			return true
		}
	}
	return false
}

// Write marshals v and stores it under key in the first tier that
// accepts it. Returns true when a persistent tier (durable or session)
// took the value, false when only process memory holds it. It never
// propagates a tier failure to the caller.
func (a *Adapter) Write(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Error("unserializable value", zap.String("key", key), zap.Error(err))
		return false
	}

	for _, t := range []Tier{a.durable, a.session} {
		if t == nil {
			continue
		}
		if err := t.Write(key, data); err != nil {
			a.log.Warn("storage write failed, falling through",
				zap.String("tier", t.Name()), zap.String("key", key), zap.Error(err))
			continue
		}
		return true
	}

	a.memory[key] = data
	return false
}
