// Package atlas composites per-label binary slice masks into a stack of RGB
// images, one per slice, each label painted in its palette color.
package atlas

import (
	"fmt"
	"image"
	"image/color"
)

// DimensionMismatchError reports a label whose slice stack does not match the
// stack the atlas was established with.
type DimensionMismatchError struct {
	Label string

	// WantSlices and GotSlices are set when the slice counts differ.
	WantSlices, GotSlices int

	// Slice is the offending slice when the slice sizes differ, -1 otherwise.
	Slice     int
	Want, Got image.Point
}

func (e *DimensionMismatchError) Error() string {
	if e.Slice < 0 {
		return fmt.Sprintf("label %q has %d slices, atlas has %d", e.Label, e.GotSlices, e.WantSlices)
	}
	return fmt.Sprintf("label %q slice %d is %dx%d, atlas slices are %dx%d",
		e.Label, e.Slice, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// Atlas accumulates colored label masks into a fixed number of rasters.
//
// The first call to Seed or Composite fixes the slice count and the slice
// size; every later call must match them. Contributions are commutative, so
// the order in which labels are composited does not change the result.
type Atlas struct {
	// Reverse maps mask slice k to atlas slice n-1-k instead of k.
	Reverse bool

	size    image.Point
	rasters []*Raster
}

// New returns an empty atlas.
func New(reverse bool) *Atlas {
	return &Atlas{Reverse: reverse}
}

// Len returns the number of slices, zero before the first contribution.
func (a *Atlas) Len() int {
	return len(a.rasters)
}

// Size returns the width and height of each slice.
func (a *Atlas) Size() image.Point {
	return a.size
}

// Raster returns atlas slice i.
func (a *Atlas) Raster(i int) *Raster {
	return a.rasters[i]
}

// check validates a stack against the established dimensions, or
// establishes them if this is the first stack.
func (a *Atlas) check(label string, masks []*image.Gray) error {
	if len(masks) == 0 {
		return &DimensionMismatchError{Label: label, Slice: -1, WantSlices: len(a.rasters)}
	}
	want := a.size
	if a.rasters == nil {
		want = masks[0].Bounds().Size()
	} else if len(masks) != len(a.rasters) {
		return &DimensionMismatchError{Label: label, Slice: -1, WantSlices: len(a.rasters), GotSlices: len(masks)}
	}
	for k, m := range masks {
		if got := m.Bounds().Size(); got != want {
			return &DimensionMismatchError{Label: label, Slice: k, Want: want, Got: got}
		}
	}

	if a.rasters == nil {
		a.size = want
		a.rasters = make([]*Raster, len(masks))
		for i := range a.rasters {
			a.rasters[i] = NewRaster(want.X, want.Y)
		}
	}
	return nil
}

func (a *Atlas) bucket(k int) int {
	if a.Reverse {
		return len(a.rasters) - 1 - k
	}
	return k
}

// Seed adds a grayscale background stack, painted equally into all three
// channels. Background slices are already in atlas order and are not
// flipped or reversed.
func (a *Atlas) Seed(background []*image.Gray) error {
	if err := a.check("background", background); err != nil {
		return err
	}
	for k, bg := range background {
		r := a.rasters[k]
		b := bg.Bounds()
		for row := 0; row < a.size.Y; row++ {
			for col := 0; col < a.size.X; col++ {
				v := bg.Pix[bg.PixOffset(b.Min.X+col, b.Min.Y+row)]
				r.Add(row, col, 1, color.RGBA{R: v, G: v, B: v})
			}
		}
	}
	return nil
}

// Composite adds one label's slice masks in color c. The masks are flipped
// according to FlipRules[o] before being added. Nothing is accumulated when
// the stack does not match the atlas.
func (a *Atlas) Composite(label string, masks []*image.Gray, c color.RGBA, o Orientation) error {
	rule, ok := FlipRules[o]
	if !ok {
		return fmt.Errorf("label %q: unknown orientation %d", label, int(o))
	}
	if err := a.check(label, masks); err != nil {
		return err
	}

	w := a.size.X
	for k, m := range masks {
		r := a.rasters[a.bucket(k)]
		vals := rule.apply(m)
		for i, v := range vals {
			r.Add(i/w, i%w, v, c)
		}
	}
	return nil
}

// Images renders every slice in atlas order.
func (a *Atlas) Images() []*image.NRGBA {
	out := make([]*image.NRGBA, len(a.rasters))
	for i, r := range a.rasters {
		out[i] = r.Image()
	}
	return out
}
