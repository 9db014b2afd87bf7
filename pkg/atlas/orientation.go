package atlas

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Orientation identifies which volume axis is the slice axis.
type Orientation int

const (
	// Axis0 slices along the first (slowest varying) axis.
	Axis0 Orientation = iota
	// Axis1 slices along the second axis.
	Axis1
	// Axis2 slices along the third (fastest varying) axis.
	Axis2
)

func (o Orientation) String() string {
	return fmt.Sprintf("axis%d", int(o))
}

// UnresolvedOrientationError reports a volume whose three axis sizes are all
// different, so no slice axis can be chosen.
type UnresolvedOrientationError struct {
	Shape [3]int
}

func (e *UnresolvedOrientationError) Error() string {
	return fmt.Sprintf("cannot resolve slice orientation of %dx%dx%d volume: no two axes are equal",
		e.Shape[0], e.Shape[1], e.Shape[2])
}

// ResolveOrientation picks the slice axis of a volume with the given shape:
// the axis whose size differs from the other two, which must be equal. It
// also returns the number of slices along that axis. The checks run in axis
// order, so a cube resolves to Axis0.
func ResolveOrientation(shape [3]int) (Orientation, int, error) {
	switch {
	case shape[1] == shape[2]:
		return Axis0, shape[0], nil
	case shape[0] == shape[2]:
		return Axis1, shape[1], nil
	case shape[0] == shape[1]:
		return Axis2, shape[2], nil
	}
	return 0, 0, &UnresolvedOrientationError{Shape: shape}
}

// FlipRule says how a label's slice mask is mirrored before it is added to
// the atlas so that it lines up with the mesh's handedness.
type FlipRule struct {
	// FlipRows reverses the row order (vertical mirror).
	FlipRows bool
	// FlipCols reverses each row (horizontal mirror).
	FlipCols bool
}

// FlipRules is the fixed orientation to flip lookup. The values were matched
// against reference atlas images and are not derived from the volume headers.
var FlipRules = map[Orientation]FlipRule{
	Axis0: {FlipRows: true, FlipCols: true},
	Axis1: {FlipRows: true},
	Axis2: {FlipRows: true},
}

// apply returns the mask values after flipping, row-major, one byte per pixel.
func (r FlipRule) apply(mask *image.Gray) []uint8 {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]uint8, w*h)

	if !r.FlipRows && !r.FlipCols {
		for y := 0; y < h; y++ {
			row := mask.Pix[mask.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(out[y*w:(y+1)*w], row[:w])
		}
		return out
	}

	var img image.Image = mask
	if r.FlipCols {
		img = transform.FlipH(img)
	}
	if r.FlipRows {
		img = transform.FlipV(img)
	}
	flipped := img.(*image.RGBA)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = flipped.Pix[flipped.PixOffset(x, y)]
		}
	}
	return out
}
