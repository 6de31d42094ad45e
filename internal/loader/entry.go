package loader

import (
	"encoding/json"
	"errors"
	"time"
)

// FileCacheEntry is a single cached, already-parsed seed file: the
// parsed rows plus TTL metadata, keyed elsewhere by the file's content
// hash.
type FileCacheEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	TTLSecs   int             `json:"ttl_seconds"`
}

// NewFileCacheEntry creates a cache entry with the given TTL.
func NewFileCacheEntry(key string, data json.RawMessage, ttlSeconds int) *FileCacheEntry {
	now := time.Now()
	return &FileCacheEntry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSecs:   ttlSeconds,
	}
}

// IsExpired reports whether the entry has passed its TTL.
func (e *FileCacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// MarshalJSON implements json.Marshaler, formatting timestamps as
// RFC3339 for readability in the cache directory.
func (e *FileCacheEntry) MarshalJSON() ([]byte, error) {
	type alias FileCacheEntry
	return json.Marshal(&struct {
		*alias
		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias:     (*alias)(e),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		ExpiresAt: e.ExpiresAt.Format(time.RFC3339),
	})
}

// UnmarshalJSON implements json.Unmarshaler, parsing RFC3339
// timestamps from the cache directory.
func (e *FileCacheEntry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil FileCacheEntry")
	}
	type alias FileCacheEntry
	aux := &struct {
		*alias
		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, aux.CreatedAt); err != nil {
		return err
	}
	if e.ExpiresAt, err = time.Parse(time.RFC3339, aux.ExpiresAt); err != nil {
		return err
	}
	return nil
}
