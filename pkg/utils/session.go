package utils

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

var timeNow = time.Now

// GenerateSessionID derives a stable anonymous session ID from a client
// fingerprint (IP plus user agent). The day bucket keeps a conversation
// on one session for a whole sitting while still rotating fingerprints
// so they are not trackable long-term.
func GenerateSessionID(fingerprint string) string {
	day := timeNow().Unix() / int64(24*time.Hour/time.Second)
	hash := md5.Sum([]byte(fingerprint + fmt.Sprintf("%d", day)))
	return hex.EncodeToString(hash[:])[:16]
}

// ValidateSessionID checks that a caller-supplied session ID has the
// expected shape before it is used as part of a Redis key.
func ValidateSessionID(sessionID string) bool {
	if len(sessionID) != 16 {
		return false
	}

	_, err := hex.DecodeString(sessionID)
	return err == nil
}

// GenerateRandomID generates a random hex ID of the given length.
func GenerateRandomID(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
