package palette

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// BuildImage renders t as a single-row image, one opaque pixel per entry.
func BuildImage(t Table) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(t), 1))
	for x, e := range t {
		i := img.PixOffset(x, 0)
		img.Pix[i+0] = e.R
		img.Pix[i+1] = e.G
		img.Pix[i+2] = e.B
		img.Pix[i+3] = 0xff
	}
	return img
}

// Sample returns the pixel of img addressed by uv using nearest-neighbor
// lookup with clamping, the way a renderer samples the palette texture.
func Sample(img image.Image, uv UV) color.RGBA {
	b := img.Bounds()
	x := b.Min.X + clampCell(uv.U, b.Dx())
	y := b.Min.Y + clampCell(uv.V, b.Dy())
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func clampCell(t float64, n int) int {
	i := int(t * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// WriteImage encodes the palette image as PNG.
func WriteImage(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
