package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"pickmycollege/internal/models"
)

// StateStore persists key rotation state across processes. GetKeyState
// returns (nil, nil) when no prior state exists.
type StateStore interface {
	GetKeyState(ctx context.Context) (*models.KeyState, error)
	SaveKeyState(ctx context.Context, st *models.KeyState) error
}

// persistTimeout bounds each write-through of rotation state.
const persistTimeout = 5 * time.Second

// KeyManager tracks which primary-provider keys are exhausted and which
// index is current. State is loaded once at construction and written
// through on every mutation: the store is the correctness source for
// other processes sharing the same quota. Store failures degrade to
// in-memory state, which self-heals across processes via the lazy index
// update in CurrentKey.
type KeyManager struct {
	mu        sync.Mutex
	keys      []string
	exhausted map[string]struct{} // by fingerprint, never raw key
	index     int
	store     StateStore
}

// NewKeyManager builds a manager over the given ordered key list and
// loads prior state from the store. Read failures are swallowed: the
// manager starts fresh.
func NewKeyManager(ctx context.Context, keys []string, store StateStore) *KeyManager {
	m := &KeyManager{
		keys:      keys,
		exhausted: make(map[string]struct{}),
		store:     store,
	}

	st, err := store.GetKeyState(ctx)
	if err != nil {
		slog.Error("failed to load key state, starting fresh", "error", err)
		return m
	}
	if st == nil {
		slog.Info("no prior key state found, starting fresh")
		return m
	}

	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[KeyFingerprint(k)] = struct{}{}
	}
	for _, fp := range st.ExhaustedKeys {
		// Ignore fingerprints of keys no longer in rotation.
		if _, ok := known[fp]; ok {
			m.exhausted[fp] = struct{}{}
		}
	}
	if st.CurrentKeyIndex >= 0 && st.CurrentKeyIndex < len(keys) {
		m.index = st.CurrentKeyIndex
	}
	slog.Info("loaded key rotation state",
		"keys", len(keys), "exhausted", len(m.exhausted), "index", m.index)
	return m
}

// KeyFingerprint derives the short identifier persisted in place of a raw
// secret.
func KeyFingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// CurrentKey scans forward from the current index, skipping exhausted
// keys, wrapping once. Returns false if the key list is empty or every
// key is exhausted. When the scan lands on a different index than
// recorded, the index is updated and persisted before returning, so a
// partially stale distributed index converges on first successful call.
func (m *KeyManager) CurrentKey() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.keys) == 0 || len(m.exhausted) >= len(m.keys) {
		return "", false
	}

	for attempt := 0; attempt < len(m.keys); attempt++ {
		idx := (m.index + attempt) % len(m.keys)
		key := m.keys[idx]
		if _, dead := m.exhausted[KeyFingerprint(key)]; dead {
			continue
		}
		if idx != m.index {
			m.index = idx
			m.persistLocked()
			slog.Info("switched to api key", "ordinal", m.index+1)
		}
		return key, true
	}
	return "", false
}

// KeyOrdinal returns the 1-based number of the current key, for logs.
func (m *KeyManager) KeyOrdinal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index + 1
}

// KeyCount returns the number of keys in rotation, exhausted or not.
func (m *KeyManager) KeyCount() int {
	return len(m.keys)
}

// MarkExhausted records a terminal authorization failure for the key. The
// key stays in the list but is excluded from CurrentKey selection.
func (m *KeyManager) MarkExhausted(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fp := KeyFingerprint(key)
	if _, done := m.exhausted[fp]; done {
		return
	}
	m.exhausted[fp] = struct{}{}
	m.persistLocked()
	slog.Warn("api key exhausted", "fingerprint", fp)
}

// Advance unconditionally moves the index to the next key modulo the key
// count. Used after request-level failures that do not prove exhaustion.
func (m *KeyManager) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.keys) == 0 {
		return
	}
	m.index = (m.index + 1) % len(m.keys)
	m.persistLocked()
}

// AllExhausted reports whether no usable key remains.
func (m *KeyManager) AllExhausted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys) == 0 || len(m.exhausted) >= len(m.keys)
}

// ResetExhausted clears the exhausted set, e.g. after a quota renewal.
func (m *KeyManager) ResetExhausted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exhausted = make(map[string]struct{})
	m.index = 0
	m.persistLocked()
	slog.Info("key exhaustion state reset")
}

// Snapshot returns a copy of the persisted state shape, for the admin
// surface. Only fingerprints are exposed.
func (m *KeyManager) Snapshot() models.KeyState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *KeyManager) stateLocked() models.KeyState {
	fps := make([]string, 0, len(m.exhausted))
	for _, k := range m.keys {
		fp := KeyFingerprint(k)
		if _, dead := m.exhausted[fp]; dead {
			fps = append(fps, fp)
		}
	}
	return models.KeyState{
		ExhaustedKeys:   fps,
		CurrentKeyIndex: m.index,
		UpdatedAt:       time.Now().UTC(),
	}
}

// persistLocked writes the state through to the store. Failures are
// logged and non-fatal: in-memory state stays authoritative for this
// process at the cost of transient cross-process drift.
func (m *KeyManager) persistLocked() {
	st := m.stateLocked()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.store.SaveKeyState(ctx, &st); err != nil {
		slog.Error("failed to persist key state", "error", err)
	}
}
