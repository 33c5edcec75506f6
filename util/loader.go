// Package util - File system helpers for batch detection.
package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions lists the lower-case extensions treated as images.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
}

// IsImageFile reports whether path has a supported image extension, ignoring case.
func IsImageFile(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ListImageFiles returns the image files directly inside dir, sorted by name.
// Subdirectories and files with other extensions are skipped.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []string: The image file paths, joined with dir.
//   - error: Error if the directory cannot be read.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// DetectionsPath returns the annotated output path for src inside dir:
// "{stem}_detections{ext}", keeping the original extension and its case.
//
// Arguments:
//   - dir: The output directory.
//   - src: The source image path.
//
// Returns:
//   - string: The output path.
func DetectionsPath(dir, src string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_detections"+ext)
}
