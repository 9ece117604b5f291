package authentication

import (
	"strings"
	"sync"
	"time"
)

// OTP verification failure reasons returned to callers.
const (
	OtpReasonExpired = "OTP expired. Request a new OTP."
	OtpReasonInvalid = "Invalid OTP."
)

// OTP validity window.
const OtpTTL = 5 * time.Minute

// OtpStore keeps at most one live code per identifier. Identifiers are
// normalized (trimmed, lower-cased) so "  A@x.com " and "a@x.com" share an
// entry.
type OtpStore interface {
	// Put stores a code for the identifier, replacing any earlier one.
	Put(identifier, code string) error
	// Verify checks the supplied code. A match consumes the entry; a
	// mismatch leaves it in place so the caller can retry until expiry.
	Verify(identifier, code string) (bool, string)
	// SweepExpired removes stale entries. Verification does not depend on
	// it; expiry is always checked at verify time.
	SweepExpired()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the in-process OtpStore used when no Redis address is
// configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]otpEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(identifier, code string) error {
	key := normalizeKey(identifier)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = otpEntry{code: code, expiresAt: s.now().Add(OtpTTL)}
	return nil
}

func (s *MemoryStore) Verify(identifier, code string) (bool, string) {
	key := normalizeKey(identifier)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false, OtpReasonExpired
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return false, OtpReasonExpired
	}
	if entry.code != code {
		return false, OtpReasonInvalid
	}
	// single use
	delete(s.entries, key)
	return true, ""
}

func (s *MemoryStore) SweepExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// StartSweeper runs SweepExpired on a fixed interval until the returned stop
// function is called.
func (s *MemoryStore) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepExpired()
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
