package palette

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidIdentity is returned for identities that do not fit the
	// encoder's scheme or range.
	ErrInvalidIdentity = errors.New("invalid color identity")

	// ErrNoPaletteImage is returned by Build for schemes that are colored
	// analytically.
	ErrNoPaletteImage = errors.New("palette scheme has no palette image")
)

// Encoder converts identities of a single scheme into texture coordinates and
// colors. The same Encoder must be used for the model and the palette image.
type Encoder struct {
	Scheme Scheme
	Table  Table
}

// NewEncoder returns an encoder for the scheme. Indexed encoders need a
// non-empty table; HSVRamp encoders ignore it.
func NewEncoder(s Scheme, t Table) (*Encoder, error) {
	switch s {
	case HSVRamp:
		return &Encoder{Scheme: s}, nil
	case Indexed:
		if len(t) == 0 {
			return nil, errors.New("indexed palette needs at least one table entry")
		}
		return &Encoder{Scheme: s, Table: t}, nil
	default:
		return nil, errors.Errorf("unknown palette scheme %q", string(s))
	}
}

// Check reports whether id can be encoded.
func (e *Encoder) Check(id Identity) error {
	if id.Scheme != e.Scheme {
		return errors.Wrapf(ErrInvalidIdentity, "%v used with %s palette", id, e.Scheme)
	}
	switch e.Scheme {
	case HSVRamp:
		if math.IsNaN(id.Hue) || id.Hue < 0 || id.Hue > MaxHue {
			return errors.Wrapf(ErrInvalidIdentity, "%v: hue outside [0, %g]", id, MaxHue)
		}
		if math.IsNaN(id.Value) || id.Value < 0 || id.Value > 1 {
			return errors.Wrapf(ErrInvalidIdentity, "%v: value outside [0, 1]", id)
		}
	case Indexed:
		if id.Index < 0 || id.Index >= len(e.Table) {
			return errors.Wrapf(ErrInvalidIdentity, "%v: index outside [0, %d)", id, len(e.Table))
		}
	}
	return nil
}

// Encode returns the texture coordinate that samples id's color.
//
// HSVRamp: u = hue/3.6, v = value*0.99 + 0.005, keeping v off the texture edges.
// Indexed: u = (index + 0.5)/N, v = 0, centering u inside the palette cell.
func (e *Encoder) Encode(id Identity) (UV, error) {
	if err := e.Check(id); err != nil {
		return UV{}, err
	}
	if e.Scheme == Indexed {
		return UV{U: (float64(id.Index) + 0.5) / float64(len(e.Table)), V: 0}, nil
	}
	return UV{U: id.Hue / MaxHue, V: id.Value*0.99 + 0.005}, nil
}

// Color returns the 8-bit color rendered for id.
func (e *Encoder) Color(id Identity) (color.RGBA, error) {
	if err := e.Check(id); err != nil {
		return color.RGBA{}, err
	}
	if e.Scheme == Indexed {
		return e.Table[id.Index].RGBA(), nil
	}
	return HSVToRGB(id.Hue/MaxHue, id.Value), nil
}

// Build renders the palette image for indexed encoders.
func (e *Encoder) Build() (*image.NRGBA, error) {
	if e.Scheme != Indexed {
		return nil, errors.Wrapf(ErrNoPaletteImage, "%s", e.Scheme)
	}
	return BuildImage(e.Table), nil
}

// HSVToRGB converts a fully saturated HSV color with hue in [0, 1] (1 wraps
// to 0) to 8-bit RGB. Channels are truncated, not rounded.
func HSVToRGB(hue, value float64) color.RGBA {
	h := math.Mod(hue, 1)
	if h < 0 {
		h++
	}
	c := colorful.Hsv(h*360, 1, value)
	return color.RGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 0xff}
}

func channel8(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f * 255)
}
