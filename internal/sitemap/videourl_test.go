package sitemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerLoc(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"youtube watch", "https://youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"youtube www", "https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"youtube mobile", "https://m.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123"},
		{"youtube extra params", "https://www.youtube.com/watch?v=abc123&t=30s", "https://www.youtube.com/embed/abc123"},
		{"youtu.be", "https://youtu.be/abc123", "https://www.youtube.com/embed/abc123"},
		{"youtube no video id", "https://www.youtube.com/playlist?list=xyz", "https://www.youtube.com/playlist?list=xyz"},
		{"drive file", "https://drive.google.com/file/d/FILE_ID/view?usp=sharing", "https://drive.google.com/file/d/FILE_ID/preview"},
		{"drive already preview", "https://drive.google.com/file/d/FILE_ID/preview", "https://drive.google.com/file/d/FILE_ID/preview"},
		{"drive bare id", "https://drive.google.com/file/d/FILE_ID", "https://drive.google.com/file/d/FILE_ID/preview"},
		{"drive other path", "https://drive.google.com/open?id=FILE_ID", "https://drive.google.com/open?id=FILE_ID"},
		{"self hosted", "https://cdn.natokghor.com/videos/ep12.mp4", "https://cdn.natokghor.com/videos/ep12.mp4"},
		{"relative path", "/videos/ep12.mp4", "/videos/ep12.mp4"},
		{"garbage", "not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerLoc(tt.in))
		})
	}
}

func TestDriveFileID(t *testing.T) {
	assert.Equal(t, "abc", driveFileID("/file/d/abc/view"))
	assert.Equal(t, "abc", driveFileID("/file/d/abc"))
	assert.Equal(t, "", driveFileID("/open"))
}
