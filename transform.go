package imgfx

import (
	"fmt"
	"math"
)

// FlipH mirrors img left to right in place.
func FlipH(img *RGB) {
	rowSize := img.Width * 3
	for y := 0; y < img.Height; y++ {
		i := y * rowSize
		reverse(img.Pix[i : i+rowSize])
	}
}

// FlipV mirrors img top to bottom in place.
func FlipV(img *RGB) {
	rowSize := img.Width * 3
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*rowSize : (top+1)*rowSize]
		b := img.Pix[bottom*rowSize : (bottom+1)*rowSize]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// Rotate rotates img by the given angle counter-clockwise and returns a new buffer.
// The angle parameter is the rotation angle in degrees.
// Right angles are exact. Other angles enlarge the canvas to the rotated bounding
// box and fill the uncovered zone with black. A NaN or infinite angle has no
// direction and returns an unrotated copy.
func Rotate(img *RGB, angle float64) *RGB {
	if !finite(angle) {
		return img.Clone()
	}
	angle = angle - math.Floor(angle/360)*360

	switch angle {
	case 0:
		return img.Clone()
	case 90:
		return rotate90(img)
	case 180:
		return rotate180(img)
	case 270:
		return rotate270(img)
	}

	srcW, srcH := img.Width, img.Height
	dstW, dstH := rotatedSize(srcW, srcH, angle)
	dst := newRGB(dstW, dstH)

	srcXOff := float64(srcW)/2 - 0.5
	srcYOff := float64(srcH)/2 - 0.5
	dstXOff := float64(dstW)/2 - 0.5
	dstYOff := float64(dstH)/2 - 0.5

	sin, cos := math.Sincos(math.Pi * angle / 180)
	for dstY := 0; dstY < dstH; dstY++ {
		for dstX := 0; dstX < dstW; dstX++ {
			xf, yf := rotatePoint(float64(dstX)-dstXOff, float64(dstY)-dstYOff, sin, cos)
			interpolatePoint(dst, dstX, dstY, img, xf+srcXOff, yf+srcYOff)
		}
	}
	return dst
}

// rotate90 maps destination (x, y) to source (w-1-y, x).
func rotate90(img *RGB) *RGB {
	dst := newRGB(img.Height, img.Width)
	for dstY := 0; dstY < dst.Height; dstY++ {
		srcX := img.Width - dstY - 1
		for dstX := 0; dstX < dst.Width; dstX++ {
			copyPixel(dst, dstX, dstY, img, srcX, dstX)
		}
	}
	return dst
}

func rotate180(img *RGB) *RGB {
	dst := newRGB(img.Width, img.Height)
	rowSize := img.Width * 3
	for dstY := 0; dstY < dst.Height; dstY++ {
		i := dstY * rowSize
		j := (img.Height - dstY - 1) * rowSize
		copy(dst.Pix[i:i+rowSize], img.Pix[j:j+rowSize])
		reverse(dst.Pix[i : i+rowSize])
	}
	return dst
}

// rotate270 maps destination (x, y) to source (y, h-1-x).
func rotate270(img *RGB) *RGB {
	dst := newRGB(img.Height, img.Width)
	for dstY := 0; dstY < dst.Height; dstY++ {
		for dstX := 0; dstX < dst.Width; dstX++ {
			copyPixel(dst, dstX, dstY, img, dstY, img.Height-dstX-1)
		}
	}
	return dst
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func checkAngle(angle float64) error {
	if !finite(angle) {
		return fmt.Errorf("%w: rotation angle %v", ErrInvalidArgument, angle)
	}
	return nil
}

func copyPixel(dst *RGB, dstX, dstY int, src *RGB, srcX, srcY int) {
	i, j := dst.Offset(dstX, dstY), src.Offset(srcX, srcY)
	copy(dst.Pix[i:i+3:i+3], src.Pix[j:j+3:j+3])
}

func rotatePoint(x, y, sin, cos float64) (float64, float64) {
	return x*cos - y*sin, x*sin + y*cos
}

// rotatedSize returns the bounding box of a w×h image rotated by angle degrees.
func rotatedSize(w, h int, angle float64) (int, int) {
	sin, cos := math.Sincos(math.Pi * angle / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	const eps = 1e-9
	neww := math.Ceil(float64(w)*cos + float64(h)*sin - eps)
	newh := math.Ceil(float64(w)*sin + float64(h)*cos - eps)
	return max(int(neww), 1), max(int(newh), 1)
}

// interpolatePoint samples src bilinearly at (xf, yf) into dst at (dstX, dstY).
// Points outside the source grid stay black.
func interpolatePoint(dst *RGB, dstX, dstY int, src *RGB, xf, yf float64) {
	if !(xf >= 0 && yf >= 0 && xf <= float64(src.Width-1) && yf <= float64(src.Height-1)) {
		return
	}
	j := dst.Offset(dstX, dstY)
	d := dst.Pix[j : j+3 : j+3]

	x0 := int(math.Floor(xf))
	y0 := int(math.Floor(yf))
	x1 := min(x0+1, src.Width-1)
	y1 := min(y0+1, src.Height-1)

	xq := xf - float64(x0)
	yq := yf - float64(y0)
	points := [4][2]int{
		{x0, y0},
		{x1, y0},
		{x0, y1},
		{x1, y1},
	}
	weights := [4]float64{
		(1 - xq) * (1 - yq),
		xq * (1 - yq),
		(1 - xq) * yq,
		xq * yq,
	}

	var r, g, b float64
	for i := 0; i < 4; i++ {
		p := points[i]
		w := weights[i]
		k := src.Offset(p[0], p[1])
		s := src.Pix[k : k+3 : k+3]
		r += float64(s[0]) * w
		g += float64(s[1]) * w
		b += float64(s[2]) * w
	}
	d[0] = clamp(r)
	d[1] = clamp(g)
	d[2] = clamp(b)
}

// reverse reverses the order of 3-byte pixels in pix.
func reverse(pix []uint8) {
	if len(pix) <= 3 {
		return
	}
	i := 0
	j := len(pix) - 3
	for i < j {
		pi := pix[i : i+3 : i+3]
		pj := pix[j : j+3 : j+3]
		pi[0], pj[0] = pj[0], pi[0]
		pi[1], pj[1] = pj[1], pi[1]
		pi[2], pj[2] = pj[2], pi[2]
		i += 3
		j -= 3
	}
}
