// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const licenseKeyPrefix = "gvd-"

// GenerateLicenseKey derives a key from the client ID, the current unix
// timestamp, and 32 random bytes. The result is the prefix plus the first
// 16 hex characters of the SHA-256 digest.
func GenerateLicenseKey(clientID string) (string, error) {
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	seed := fmt.Sprintf("%s-%d-%s", clientID, time.Now().Unix(), hex.EncodeToString(random))
	digest := sha256.Sum256([]byte(seed))

	return licenseKeyPrefix + hex.EncodeToString(digest[:])[:16], nil
}

// SanitizeFilename strips path components and replaces characters that are
// awkward in object-store keys, keeping the extension.
func SanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return sanitizeObjectName(base) + strings.ToLower(ext)
}

func sanitizeObjectName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
