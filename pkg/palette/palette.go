// Package palette maps label color identities to texture coordinates and
// colors, and renders the shared palette image those coordinates address.
//
// Two schemes are supported and modeled as a tagged variant:
//
//   - HSVRamp: a continuous ramp addressed by (hue, value); colors are computed
//     analytically and no palette image is needed.
//   - Indexed: a fixed table of RGB entries addressed by a small integer; the
//     table is rendered into a single-row image sampled at the cell centers.
package palette

import (
	"fmt"
	"image/color"
)

// Scheme identifies which palette variant an identity or encoder uses.
type Scheme string

const (
	// HSVRamp addresses colors by hue in [0, MaxHue] and value in [0, 1].
	HSVRamp Scheme = "hsv"

	// Indexed addresses colors by position in a fixed RGB table.
	Indexed Scheme = "indexed"
)

// MaxHue is the upper end of the hue scale used by catalogs. Hue is expressed
// in hundreds of degrees, so 3.6 is a full turn.
const MaxHue = 3.6

// Identity is the color identity of one label. Scheme selects which of the
// remaining fields are meaningful.
type Identity struct {
	Scheme Scheme `yaml:"-" toml:"-"`

	// Hue, Saturation and Value are used by HSVRamp. Saturation is carried
	// for reference only; ramp colors are always fully saturated.
	Hue        float64 `yaml:"hue,omitempty" toml:"hue,omitempty"`
	Saturation float64 `yaml:"saturation,omitempty" toml:"saturation,omitempty"`
	Value      float64 `yaml:"value,omitempty" toml:"value,omitempty"`

	// Index is used by Indexed.
	Index int `yaml:"index,omitempty" toml:"index,omitempty"`
}

// HSV returns an HSVRamp identity.
func HSV(hue, saturation, value float64) Identity {
	return Identity{Scheme: HSVRamp, Hue: hue, Saturation: saturation, Value: value}
}

// Index returns an Indexed identity.
func Index(i int) Identity {
	return Identity{Scheme: Indexed, Index: i}
}

// DefaultFallback returns the neutral identity given to labels that are not
// present in a catalog: hue 1.8 / value 1.0 on the ramp, entry 0 in a table.
func DefaultFallback(s Scheme) Identity {
	if s == Indexed {
		return Index(0)
	}
	return HSV(1.8, 1.0, 1.0)
}

func (id Identity) String() string {
	switch id.Scheme {
	case HSVRamp:
		return fmt.Sprintf("hsv(%g, %g, %g)", id.Hue, id.Saturation, id.Value)
	case Indexed:
		return fmt.Sprintf("index(%d)", id.Index)
	default:
		return fmt.Sprintf("identity(%q)", string(id.Scheme))
	}
}

// UV is a texture coordinate pair in [0, 1].
type UV struct {
	U, V float64
}

// Entry is one RGB color of an indexed table.
type Entry struct {
	R uint8 `yaml:"r" toml:"r"`
	G uint8 `yaml:"g" toml:"g"`
	B uint8 `yaml:"b" toml:"b"`
}

// RGBA returns the entry as an opaque color.
func (e Entry) RGBA() color.RGBA {
	return color.RGBA{R: e.R, G: e.G, B: e.B, A: 0xff}
}

// Table is a fixed, ordered set of indexed colors.
type Table []Entry

// DefaultTable is a small anatomical table: entry 0 is the neutral fallback.
var DefaultTable = Table{
	{R: 200, G: 200, B: 200}, // neutral
	{R: 241, G: 214, B: 145}, // bone
	{R: 216, G: 101, B: 79},  // muscle
	{R: 221, G: 130, B: 101}, // liver
	{R: 185, G: 102, B: 83},  // kidney
	{R: 0, G: 151, B: 206},   // vein
	{R: 216, G: 53, B: 53},   // artery
	{R: 197, G: 165, B: 145}, // lung
	{R: 128, G: 174, B: 128}, // gland
	{R: 255, G: 250, B: 220}, // nerve
}
