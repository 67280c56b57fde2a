package vision

import "image"

// Threshold produces a binary image: pixels above thresh become 255,
// all others 0.
func Threshold(src *image.Gray, thresh uint8) *image.Gray {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.Pix[y*src.Stride+x] > thresh {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// AdaptiveMeanThreshold thresholds each pixel against the mean of its
// blockSize x blockSize neighborhood minus c. With invert set, pixels
// above the local threshold become 0 and the rest 255, which turns
// dark text on a light page into bright foreground.
func AdaptiveMeanThreshold(src *image.Gray, blockSize int, c float64, invert bool) *image.Gray {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	half := blockSize / 2

	// Summed-area table with one row/column of zero padding
	integral := make([]uint64, (w+1)*(h+1))
	iw := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(src.Pix[y*src.Stride+x])
			integral[(y+1)*iw+(x+1)] = integral[y*iw+(x+1)] + rowSum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := x - half
			y0 := y - half
			x1 := x + half
			y1 := y + half
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if y1 >= h {
				y1 = h - 1
			}

			count := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*iw+(x1+1)] - integral[y0*iw+(x1+1)] -
				integral[(y1+1)*iw+x0] + integral[y0*iw+x0]
			mean := float64(sum) / float64(count)

			above := float64(src.Pix[y*src.Stride+x]) > mean-c
			var out uint8
			if above != invert {
				out = 255
			}
			dst.Pix[y*dst.Stride+x] = out
		}
	}
	return dst
}
