package vision

import "image"

// gradients computes Sobel gradients for every pixel. The returned
// slices are indexed y*w+x. Positive gy points down the image.
func gradients(src *image.Gray) (gx, gy []int, w, h int) {
	src = zeroOrigin(src)
	w, h = Dimensions(src)
	gx = make([]int, w*h)
	gy = make([]int, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tl := int(pixelAt(src, x-1, y-1, w, h))
			tc := int(pixelAt(src, x, y-1, w, h))
			tr := int(pixelAt(src, x+1, y-1, w, h))
			ml := int(pixelAt(src, x-1, y, w, h))
			mr := int(pixelAt(src, x+1, y, w, h))
			bl := int(pixelAt(src, x-1, y+1, w, h))
			bc := int(pixelAt(src, x, y+1, w, h))
			br := int(pixelAt(src, x+1, y+1, w, h))

			gx[y*w+x] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy[y*w+x] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return gx, gy, w, h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
