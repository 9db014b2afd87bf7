package volume

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelmesh/internal/models"
	"labelmesh/pkg/atlas"
)

// writeSlice writes a w×h greyscale PNG whose pixel (x, y) is fill(x, y).
func writeSlice(t *testing.T, path string, w, h int, fill func(x, y int) uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadStackOrdersByNumber(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{10, 2, 1} {
		n := n
		writeSlice(t, filepath.Join(dir, fmt.Sprintf("slice_%d.png", n)), 4, 3, func(x, y int) uint8 {
			return uint8(n)
		})
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	vol, err := LoadStack(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), vol.Name)
	assert.Equal(t, [3]int{3, 3, 4}, vol.Shape())
	assert.Equal(t, uint8(1), vol.At(0, 0, 0))
	assert.Equal(t, uint8(2), vol.At(3, 2, 1))
	assert.Equal(t, uint8(10), vol.At(1, 1, 2))
}

func TestLoadStackErrors(t *testing.T) {
	_, err := LoadStack(t.TempDir())
	assert.True(t, errors.Is(err, ErrEmptyStack))

	dir := t.TempDir()
	writeSlice(t, filepath.Join(dir, "0.png"), 4, 4, func(x, y int) uint8 { return 0 })
	writeSlice(t, filepath.Join(dir, "1.png"), 4, 5, func(x, y int) uint8 { return 0 })
	_, err = LoadStack(dir)
	assert.Error(t, err)

	_, err = LoadStack(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestLoadSlices(t *testing.T) {
	dir := t.TempDir()
	writeSlice(t, filepath.Join(dir, "bg_10.png"), 2, 2, func(x, y int) uint8 { return 200 })
	writeSlice(t, filepath.Join(dir, "bg_2.png"), 2, 2, func(x, y int) uint8 { return uint8(10*x + y) })

	slices, err := LoadSlices(dir)
	require.NoError(t, err)
	require.Len(t, slices, 2)

	assert.Equal(t, 0, slices[0].Index)
	assert.Equal(t, "bg_2.png", slices[0].Filename)
	assert.Equal(t, uint8(11), slices[0].Image.GrayAt(1, 1).Y)

	assert.Equal(t, 1, slices[1].Index)
	assert.Equal(t, "bg_10.png", slices[1].Filename)
	assert.Equal(t, uint8(200), slices[1].Image.GrayAt(0, 1).Y)
}

func TestExtractNumber(t *testing.T) {
	assert.Equal(t, 12, extractNumber("slice_012.png"))
	assert.Equal(t, 0, extractNumber("background.png"))
	assert.Equal(t, 7, extractNumber("/tmp/a/7.jpg"))
}

// labelled returns a volume where voxel (x, y, z) is 1 when x+y+z is even.
func labelled(w, h, d int) *models.Volume {
	vol := models.NewVolume("checker", w, h, d)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if (x+y+z)%2 == 0 {
					vol.Set(x, y, z, 1)
				}
			}
		}
	}
	return vol
}

func TestSlicesResolveOrientation(t *testing.T) {
	cases := []struct {
		w, h, d int
		want    atlas.Orientation
		n       int
		size    image.Point
	}{
		{w: 4, h: 4, d: 2, want: atlas.Axis0, n: 2, size: image.Pt(4, 4)},
		{w: 4, h: 2, d: 4, want: atlas.Axis1, n: 2, size: image.Pt(4, 4)},
		{w: 2, h: 4, d: 4, want: atlas.Axis2, n: 2, size: image.Pt(4, 4)},
	}
	for _, tc := range cases {
		vol := labelled(tc.w, tc.h, tc.d)
		o, masks, err := Slicer{}.Slices(vol, 1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, o)
		require.Len(t, masks, tc.n)
		for _, m := range masks {
			assert.Equal(t, tc.size, m.Bounds().Size())
		}
	}

	_, _, err := Slicer{}.Slices(labelled(2, 3, 4), 1)
	var uerr *atlas.UnresolvedOrientationError
	assert.True(t, errors.As(err, &uerr))
}

func TestExtractSliceMasks(t *testing.T) {
	vol := models.NewVolume("v", 3, 2, 4)
	vol.Set(2, 1, 3, 5)
	vol.Set(0, 0, 3, 7)

	m, err := ExtractSlice(vol, atlas.Axis0, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), m.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), m.GrayAt(0, 0).Y, "other labels are masked out")

	m, err = ExtractSlice(vol, atlas.Axis1, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 4), m.Bounds().Size())
	assert.Equal(t, uint8(1), m.GrayAt(2, 3).Y)

	m, err = ExtractSlice(vol, atlas.Axis2, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 4), m.Bounds().Size())
	assert.Equal(t, uint8(1), m.GrayAt(1, 3).Y)

	_, err = ExtractSlice(vol, atlas.Axis0, 4, 5)
	assert.Error(t, err)
	_, err = ExtractSlice(vol, atlas.Axis2, -1, 5)
	assert.Error(t, err)
	_, err = ExtractSlice(vol, atlas.Orientation(3), 0, 5)
	assert.Error(t, err)
}
