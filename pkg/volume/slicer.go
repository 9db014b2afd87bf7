package volume

import (
	"fmt"
	"image"

	"labelmesh/internal/models"
	"labelmesh/pkg/atlas"
)

// Slicer cuts a label volume into binary masks along its resolved slice
// axis. A mask pixel is 1 where the voxel equals the iso label and 0
// elsewhere.
type Slicer struct{}

// Slices resolves the slice axis of vol from its shape and returns one mask
// per position along that axis.
func (Slicer) Slices(vol *models.Volume, iso uint8) (atlas.Orientation, []*image.Gray, error) {
	if err := vol.Validate(); err != nil {
		return 0, nil, err
	}
	o, n, err := atlas.ResolveOrientation(vol.Shape())
	if err != nil {
		return 0, nil, err
	}

	masks := make([]*image.Gray, n)
	for k := range masks {
		masks[k], err = ExtractSlice(vol, o, k, iso)
		if err != nil {
			return 0, nil, err
		}
	}
	return o, masks, nil
}

// ExtractSlice returns the mask at position along axis o.
//
// With the volume shape (Depth, Height, Width), the remaining two axes keep
// their storage order: rows follow the lower axis, columns the higher one.
//
//	Axis0: Height rows × Width columns (the z plane)
//	Axis1: Depth rows × Width columns (the y plane)
//	Axis2: Depth rows × Height columns (the x plane)
func ExtractSlice(vol *models.Volume, o atlas.Orientation, position int, iso uint8) (*image.Gray, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	var img *image.Gray
	switch o {
	case atlas.Axis0:
		if position >= vol.Depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, vol.Depth)
		}
		img = image.NewGray(image.Rect(0, 0, vol.Width, vol.Height))
		for y := 0; y < vol.Height; y++ {
			for x := 0; x < vol.Width; x++ {
				img.Pix[y*img.Stride+x] = mask(vol.At(x, y, position), iso)
			}
		}

	case atlas.Axis1:
		if position >= vol.Height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, vol.Height)
		}
		img = image.NewGray(image.Rect(0, 0, vol.Width, vol.Depth))
		for z := 0; z < vol.Depth; z++ {
			for x := 0; x < vol.Width; x++ {
				img.Pix[z*img.Stride+x] = mask(vol.At(x, position, z), iso)
			}
		}

	case atlas.Axis2:
		if position >= vol.Width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, vol.Width)
		}
		img = image.NewGray(image.Rect(0, 0, vol.Height, vol.Depth))
		for z := 0; z < vol.Depth; z++ {
			for y := 0; y < vol.Height; y++ {
				img.Pix[z*img.Stride+y] = mask(vol.At(position, y, z), iso)
			}
		}

	default:
		return nil, fmt.Errorf("invalid orientation: %d", int(o))
	}

	return img, nil
}

func mask(v, iso uint8) uint8 {
	if v == iso {
		return 1
	}
	return 0
}
