// Package util holds image file IO helpers shared by the command-line
// tools: decoding source frames, converting them for annotation, and
// writing annotated output back to disk.
package util

import (
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
)

// imageExtensions lists the file extensions treated as images when
// scanning a directory.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// LoadImage reads and decodes an image file. JPEG and PNG are supported
// through their registered decoders.
//
// Arguments:
//   - path: Path to the image file.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: An error if the file cannot be read or decoded.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	return img, nil
}

// ToRGBA returns img as an *image.RGBA, copying only when the underlying
// type differs. Annotation requires a mutable RGBA surface.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// SaveImage encodes img to path, choosing the format from the file
// extension. ".png" writes PNG; ".jpg" and ".jpeg" write JPEG at quality
// 90; anything else is an error.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	default:
		err = errors.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	return errors.Wrapf(err, "encoding %s", path)
}

// ListImageFiles returns the image file paths directly under dir, sorted
// by name so repeated runs process frames in a stable order.
//
// Arguments:
//   - dir: Directory to scan. Subdirectories are not descended into.
//
// Returns:
//   - []string: Sorted paths of the image files found.
//   - error: An error if the directory cannot be read.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
