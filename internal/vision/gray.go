package vision

import (
	"image"
	"image/color"
)

// ToGray converts an image to 8-bit grayscale. The result is always a
// fresh zero-origin image, so callers may pass sub-images freely.
func ToGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	// Fast path for images that are already grayscale
	if g, ok := src.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			srcOff := g.PixOffset(b.Min.X, b.Min.Y+y)
			dstOff := gray.PixOffset(0, y)
			copy(gray.Pix[dstOff:dstOff+b.Dx()], g.Pix[srcOff:srcOff+b.Dx()])
		}
		return gray
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			gray.SetGray(x, y, c)
		}
	}
	return gray
}

// Dimensions returns the width and height of a grayscale image.
func Dimensions(g *image.Gray) (int, int) {
	b := g.Bounds()
	return b.Dx(), b.Dy()
}

// zeroOrigin returns g itself when its bounds start at (0,0), or a
// zero-origin copy otherwise. Internal pixel loops index Pix directly
// and require a zero origin.
func zeroOrigin(g *image.Gray) *image.Gray {
	b := g.Bounds()
	if b.Min.X == 0 && b.Min.Y == 0 {
		return g
	}
	return ToGray(g)
}

// pixelAt returns the intensity at zero-origin coordinates, clamping
// out-of-range coordinates to the nearest edge.
func pixelAt(g *image.Gray, x, y, w, h int) uint8 {
	if x < 0 {
		x = 0
	} else if x >= w {
		x = w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= h {
		y = h - 1
	}
	return g.Pix[y*g.Stride+x]
}
