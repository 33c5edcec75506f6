package images

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Open decodes the image file at path. The format is detected from content.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %s", path)
	}
	return img, nil
}

// Save encodes img to path. The format is chosen from the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to save image %s", path)
	}
	return nil
}
