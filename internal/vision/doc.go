// Package vision provides the pixel-level image operations used for
// chart region detection and data extraction.
//
// All operations work on 8-bit grayscale images and are pure: they
// allocate their outputs and never modify their inputs. Every function
// tolerates empty images by returning an empty result.
//
// # Primitives
//
// Conversion and filtering:
//
//	gray := vision.ToGray(img)
//	blurred := vision.GaussianBlur(gray, 3)
//	edges := vision.Canny(gray, 50, 150)
//
// Thresholding and morphology:
//
//	binary := vision.Threshold(gray, 127)
//	adaptive := vision.AdaptiveMeanThreshold(gray, 11, 2, true)
//	closed := vision.Close(binary, 5, 5)
//
// # Shape Analysis
//
// Contours are external boundaries of 8-connected foreground
// components:
//
//	contours := vision.FindContours(binary)
//	for _, c := range contours {
//		area := c.Area()
//		rect := c.BoundingRect()
//	}
//
// Circle and line-segment detection use Hough transforms; corner
// detection uses the minimum-eigenvalue measure:
//
//	circles := vision.DetectCircles(gray, 10, 100)
//	segments := vision.DetectSegments(edges, 50, 20, 10)
//	corners := vision.GoodFeatures(gray, 20, 0.01, 10)
package vision
