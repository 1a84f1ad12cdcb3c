package config

import "time"

// SyncConfig contains tuning for the metadata synchronization pipeline.
type SyncConfig struct {
	// DebounceWindow suppresses a second identical entitlement push issued
	// within this span of the previous one.
	DebounceWindow time.Duration `env:"SYNC_DEBOUNCE_WINDOW" envDefault:"3s"`

	// PushCacheSize bounds the in-memory dedupe cache (entries, one per user).
	PushCacheSize int `env:"SYNC_PUSH_CACHE_SIZE" envDefault:"4096"`
}

// Sanitize applies guardrails to sync configuration values.
func (s *SyncConfig) Sanitize() {
	if s.DebounceWindow <= 0 {
		s.DebounceWindow = 3 * time.Second
	}
	if s.PushCacheSize <= 0 {
		s.PushCacheSize = 4096
	}
}
