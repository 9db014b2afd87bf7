package atlas

import (
	"image"
	"image/color"
)

// Raster is one atlas slice: an RGB accumulator addressed as
// (row, 3*column + channel), channels interleaved R, G, B.
type Raster struct {
	Width, Height int
	Pix           []uint8
}

// NewRaster returns a black raster.
func NewRaster(width, height int) *Raster {
	return &Raster{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// Offset returns the index of the red channel of pixel (row, col).
func (r *Raster) Offset(row, col int) int {
	return row*3*r.Width + 3*col
}

// At returns the RGB triple at (row, col).
func (r *Raster) At(row, col int) [3]uint8 {
	i := r.Offset(row, col)
	return [3]uint8{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// Add accumulates mask*c into the pixel at (row, col). Each channel
// saturates at 255.
func (r *Raster) Add(row, col int, mask uint8, c color.RGBA) {
	if mask == 0 {
		return
	}
	i := r.Offset(row, col)
	r.Pix[i] = addSat(r.Pix[i], mask, c.R)
	r.Pix[i+1] = addSat(r.Pix[i+1], mask, c.G)
	r.Pix[i+2] = addSat(r.Pix[i+2], mask, c.B)
}

func addSat(p, mask, ch uint8) uint8 {
	sum := int(p) + int(mask)*int(ch)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Image returns the raster as an opaque image.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			src := r.Offset(row, col)
			dst := img.PixOffset(col, row)
			img.Pix[dst] = r.Pix[src]
			img.Pix[dst+1] = r.Pix[src+1]
			img.Pix[dst+2] = r.Pix[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}
