// internal/services/media_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMediaFile(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"jpeg ok", "face.jpg", "image/jpeg", 1024, false},
		{"png ok", "face.png", "image/png", 1024, false},
		{"mp4 ok", "clip.mp4", "video/mp4", 10 << 20, false},
		{"mkv ok", "clip.mkv", "video/mkv", 10 << 20, false},
		{"at limit", "big.mp4", "video/mp4", MaxMediaFileSize, false},
		{"over limit", "huge.mp4", "video/mp4", MaxMediaFileSize + 1, true},
		{"gif rejected", "anim.gif", "image/gif", 1024, true},
		{"pdf rejected", "doc.pdf", "application/pdf", 1024, true},
		{"empty type", "mystery", "", 1024, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMediaFile(tc.filename, tc.contentType, tc.size)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
