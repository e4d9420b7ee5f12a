// internal/utils/crypto_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPattern = regexp.MustCompile(`^gvd-[0-9a-f]{16}$`)

func TestGenerateLicenseKeyFormat(t *testing.T) {
	key, err := GenerateLicenseKey("client-1")

	require.NoError(t, err)
	assert.Regexp(t, keyPattern, key)
}

func TestGenerateLicenseKeyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateLicenseKey("same-client")
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", SanitizeFilename("report.pdf"))
	assert.Equal(t, "my_photo__1__JPG.jpg", SanitizeFilename("my photo (1).JPG.jpg"))
	assert.Equal(t, "evil.png", SanitizeFilename("../../evil.png"))
	assert.Equal(t, "clip.mp4", SanitizeFilename("clip.MP4"))
}
