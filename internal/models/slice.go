package models

import (
	"fmt"
	"image"
)

// Slice is one greyscale cross-section of a label volume.
type Slice struct {
	// Image holds the grey levels read from the slice file.
	Image *image.Gray

	// Index is the position of this slice along the resolved slice axis.
	Index int

	// Filename is the source file the slice was read from, if any.
	Filename string
}

// Images returns the images of slices in order.
func Images(slices []Slice) []*image.Gray {
	out := make([]*image.Gray, len(slices))
	for i, s := range slices {
		out[i] = s.Image
	}
	return out
}

// Volume is a segmented label volume stored as a flat voxel array.
//
// The shape is (Depth, Height, Width), with Width varying fastest, so voxel
// (z, y, x) lives at z*Width*Height + y*Width + x.
type Volume struct {
	// Name is the canonical label name (usually the source file name).
	Name string

	// Data holds one label value per voxel.
	Data []uint8

	// Width, Height and Depth are the dimensions of the volume in voxels.
	Width, Height, Depth int
}

// NewVolume allocates an empty volume of the given dimensions.
func NewVolume(name string, width, height, depth int) *Volume {
	return &Volume{
		Name:   name,
		Data:   make([]uint8, width*height*depth),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// Shape returns the axis sizes in storage order (Depth, Height, Width).
func (v *Volume) Shape() [3]int {
	return [3]int{v.Depth, v.Height, v.Width}
}

// Index returns the flat offset of voxel (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return z*v.Width*v.Height + y*v.Width + x
}

// At returns the voxel value at (x, y, z), or 0 outside the volume.
func (v *Volume) At(x, y, z int) uint8 {
	if x < 0 || y < 0 || z < 0 || x >= v.Width || y >= v.Height || z >= v.Depth {
		return 0
	}
	return v.Data[v.Index(x, y, z)]
}

// Set stores a voxel value at (x, y, z).
func (v *Volume) Set(x, y, z int, value uint8) {
	v.Data[v.Index(x, y, z)] = value
}

// Validate checks that the voxel array matches the declared dimensions.
func (v *Volume) Validate() error {
	if v.Width <= 0 || v.Height <= 0 || v.Depth <= 0 {
		return fmt.Errorf("volume %q has non-positive dimensions %dx%dx%d", v.Name, v.Width, v.Height, v.Depth)
	}
	if want := v.Width * v.Height * v.Depth; len(v.Data) != want {
		return fmt.Errorf("volume %q holds %d voxels, expected %d", v.Name, len(v.Data), want)
	}
	return nil
}

// Count returns how many voxels carry the given label value.
func (v *Volume) Count(label uint8) int {
	n := 0
	for _, value := range v.Data {
		if value == label {
			n++
		}
	}
	return n
}
