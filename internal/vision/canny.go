package vision

import "image"

// Canny performs edge detection with double-threshold hysteresis.
// Output pixels are 255 on edges and 0 elsewhere. The low and high
// values threshold the L1 gradient magnitude.
func Canny(src *image.Gray, low, high int) *image.Gray {
	src = zeroOrigin(src)
	w, h := Dimensions(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return dst
	}
	if low > high {
		low, high = high, low
	}

	// Step 1: gradient magnitude and direction
	gx, gy, _, _ := gradients(src)
	mag := make([]int, w*h)
	for i := range mag {
		mag[i] = abs(gx[i]) + abs(gy[i])
	}

	// Step 2: non-maximum suppression along the gradient direction,
	// quantized to horizontal, vertical, and the two diagonals
	thin := make([]int, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}

			dx := gx[i]
			dy := gy[i]
			ax := abs(dx)
			ay := abs(dy)

			var m1, m2 int
			switch {
			case 2*ay <= ax:
				// Near-horizontal gradient: compare east/west
				m1, m2 = mag[i-1], mag[i+1]
			case 2*ax <= ay:
				// Near-vertical gradient: compare north/south
				m1, m2 = mag[i-w], mag[i+w]
			case (dx > 0) == (dy > 0):
				// Diagonal \
				m1, m2 = mag[i-w-1], mag[i+w+1]
			default:
				// Diagonal /
				m1, m2 = mag[i-w+1], mag[i+w-1]
			}

			if m >= m1 && m >= m2 {
				thin[i] = m
			}
		}
	}

	// Step 3: double threshold with hysteresis. Strong pixels seed a
	// flood fill that promotes connected weak pixels to edges.
	const (
		weak   = 1
		strong = 2
	)
	labels := make([]uint8, w*h)
	var stack []int
	for i, m := range thin {
		if m >= high {
			labels[i] = strong
			stack = append(stack, i)
		} else if m >= low {
			labels[i] = weak
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x := i % w
		y := i / w
		dst.Pix[y*dst.Stride+x] = 255

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx := x + dx
				ny := y + dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if labels[n] == weak {
					labels[n] = strong
					stack = append(stack, n)
				}
			}
		}
	}

	return dst
}
