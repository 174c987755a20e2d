package models

import "time"

// KeyState is the persisted rotation state for the primary provider's key
// pool. ExhaustedKeys holds short fingerprints, never raw secrets. The
// state is shared across processes: it is read once at startup and
// upserted on every mutation.
type KeyState struct {
	ExhaustedKeys   []string  `json:"exhausted_keys"`
	CurrentKeyIndex int       `json:"current_key_index"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Counter is one analytics counter row.
type Counter struct {
	Name      string    `json:"name"`
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Analytics counter names.
const (
	CounterSubmissions         = "user_submissions"
	CounterCollegesRecommended = "colleges_recommended"
)
