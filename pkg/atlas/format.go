package atlas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"labelmesh/internal/fsutil"
)

// Format is the image encoding of written atlas slices.
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	BMP  Format = "bmp"
)

// ParseFormat accepts a format name or file extension, case insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "", "png":
		return PNG, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	}
	return "", fmt.Errorf("unsupported atlas format %q", s)
}

// FileName returns the name of atlas slice i, e.g. "0.png".
func (f Format) FileName(i int) string {
	return fmt.Sprintf("%d.%s", i, f)
}

// Encode writes img in the format.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported atlas format %q", string(f))
}

// WriteSequence writes images into dir as 0.<ext>, 1.<ext>, ... The files
// appear only once every image is fully encoded.
func WriteSequence(dir string, images []*image.NRGBA, f Format) error {
	var s fsutil.Stage
	if err := StageSequence(&s, dir, images, f); err != nil {
		s.Abort()
		return err
	}
	return s.Commit()
}

// StageSequence encodes images into s under the names WriteSequence uses.
func StageSequence(s *fsutil.Stage, dir string, images []*image.NRGBA, f Format) error {
	for i, img := range images {
		path := filepath.Join(dir, f.FileName(i))
		err := s.WriteFile(path, func(w io.Writer) error {
			return f.Encode(w, img)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
