// Package volume loads label volumes from slice image stacks and cuts them
// back into binary slice masks for the atlas.
package volume

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"labelmesh/internal/logger"
	"labelmesh/internal/models"
)

// ErrEmptyStack is returned when a directory holds no slice images.
var ErrEmptyStack = errors.New("no slice images found")

var sliceExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// LoadSlices reads every slice image in dir as greyscale, ordered by the
// number embedded in the file name so "slice_2.png" comes before
// "slice_10.png". Each slice records its position and source file, and every
// slice must have the same size.
func LoadSlices(dir string) ([]models.Slice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read slice directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if sliceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrEmptyStack, "%s", dir)
	}

	sort.SliceStable(files, func(i, j int) bool {
		ni, nj := extractNumber(files[i]), extractNumber(files[j])
		if ni != nj {
			return ni < nj
		}
		return files[i] < files[j]
	})

	slices := make([]models.Slice, len(files))
	for z, name := range files {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		gray := toGray(img)
		if z > 0 {
			want := slices[0].Image.Rect.Size()
			if got := gray.Rect.Size(); got != want {
				return nil, errors.Errorf("slice %s is %dx%d, expected %dx%d",
					name, got.X, got.Y, want.X, want.Y)
			}
		}
		slices[z] = models.Slice{Image: gray, Index: z, Filename: name}
	}
	return slices, nil
}

// LoadStack reads the slice images of dir into a volume named after the
// directory. Each slice becomes one step along the first axis.
//
// Pixels are converted to 8-bit grey; the grey level is the voxel label.
func LoadStack(dir string) (*models.Volume, error) {
	slices, err := LoadSlices(dir)
	if err != nil {
		return nil, err
	}

	size := slices[0].Image.Rect.Size()
	vol := models.NewVolume(filepath.Base(dir), size.X, size.Y, len(slices))
	plane := vol.Width * vol.Height
	for _, s := range slices {
		copy(vol.Data[s.Index*plane:(s.Index+1)*plane], s.Image.Pix)
	}

	logger.Debug("Loaded slice stack",
		zap.String("dir", dir),
		zap.String("first", slices[0].Filename),
		zap.Int("slices", vol.Depth),
		zap.Int("width", vol.Width),
		zap.Int("height", vol.Height))
	return vol, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open slice %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode slice %s", path)
	}
	return img, nil
}

// toGray returns img as a tightly packed greyscale image anchored at the
// origin.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			src := g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], src[:b.Dx()])
		}
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetGray(x, y, color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray))
		}
	}
	return out
}

// extractNumber returns the digits of a file name as a number, or 0 when
// there are none.
func extractNumber(filename string) int {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
