package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsImageFile validates the supported extensions, ignoring case.
func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"a.jpg":          true,
		"a.JPG":          true,
		"a.jpeg":         true,
		"dir/b.Png":      true,
		"c.gif":          true,
		"d.BMP":          true,
		"e.webp":         false,
		"f.tiff":         false,
		"noext":          false,
		"archive.jpg.gz": false,
	}

	for path, expected := range tests {
		assert.Equal(t, expected, IsImageFile(path), path)
	}
}

// TestListImageFiles validates filtering and ordering of a directory listing.
func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "c.txt", "d.bmp", "notes"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o700))

	paths, err := ListImageFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "d.bmp"),
	}, paths)
}

// TestListImageFilesMissing validates that an unreadable directory is an error.
func TestListImageFilesMissing(t *testing.T) {
	_, err := ListImageFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

// TestDetectionsPath validates output naming.
func TestDetectionsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "face_detections.jpg"), DetectionsPath("out", "in/face.jpg"))
	assert.Equal(t, filepath.Join("out", "IMG_01_detections.PNG"), DetectionsPath("out", "/data/IMG_01.PNG"))
	assert.Equal(t, filepath.Join("out", "group.photo_detections.bmp"), DetectionsPath("out", "group.photo.bmp"))
}
