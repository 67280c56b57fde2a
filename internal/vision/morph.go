package vision

import "image"

// Dilate grows foreground (nonzero) regions by a kw x kh rectangular
// kernel anchored at its center.
func Dilate(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, true)
}

// Erode shrinks foreground regions by a kw x kh rectangular kernel
// anchored at its center.
func Erode(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, false)
}

// Close performs dilation followed by erosion, bridging small gaps in
// foreground regions such as broken bar outlines.
func Close(src *image.Gray, kw, kh int) *image.Gray {
	return Erode(Dilate(src, kw, kh), kw, kh)
}

func morph(src *image.Gray, kw, kh int, dilate bool) *image.Gray {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	if kw < 1 {
		kw = 1
	}
	if kh < 1 {
		kh = 1
	}
	halfW := kw / 2
	halfH := kh / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var on bool
			if dilate {
				on = anyForeground(src, x, y, halfW, halfH, w, h)
			} else {
				on = allForeground(src, x, y, halfW, halfH, w, h)
			}
			if on {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// anyForeground reports whether any kernel pixel is foreground.
// Pixels outside the image count as background.
func anyForeground(src *image.Gray, x, y, halfW, halfH, w, h int) bool {
	for ky := -halfH; ky <= halfH; ky++ {
		for kx := -halfW; kx <= halfW; kx++ {
			nx := x + kx
			ny := y + ky
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if src.Pix[ny*src.Stride+nx] != 0 {
				return true
			}
		}
	}
	return false
}

// allForeground reports whether every kernel pixel is foreground.
// Pixels outside the image count as foreground so blobs touching the
// border are not eaten away.
func allForeground(src *image.Gray, x, y, halfW, halfH, w, h int) bool {
	for ky := -halfH; ky <= halfH; ky++ {
		for kx := -halfW; kx <= halfW; kx++ {
			nx := x + kx
			ny := y + ky
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if src.Pix[ny*src.Stride+nx] == 0 {
				return false
			}
		}
	}
	return true
}
