package vision

import "image"

// GaussianBlur applies a Gaussian smoothing kernel of the given size
// (3 or 5). Unsupported sizes fall back to 3. Edges are handled by
// clamping to the nearest pixel.
func GaussianBlur(src *image.Gray, ksize int) *image.Gray {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	var kernel []int
	var norm int
	switch ksize {
	case 5:
		kernel = []int{
			1, 4, 6, 4, 1,
			4, 16, 24, 16, 4,
			6, 24, 36, 24, 6,
			4, 16, 24, 16, 4,
			1, 4, 6, 4, 1,
		}
		norm = 256
	default:
		ksize = 3
		kernel = []int{
			1, 2, 1,
			2, 4, 2,
			1, 2, 1,
		}
		norm = 16
	}
	half := ksize / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					v := int(pixelAt(src, x+kx, y+ky, w, h))
					sum += v * kernel[(ky+half)*ksize+(kx+half)]
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / norm)
		}
	}
	return dst
}
