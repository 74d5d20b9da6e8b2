package imgfx

import (
	"errors"
	"fmt"
	"image"
)

// SplitMode defines the mode in which the image will be split
type SplitMode int

const (
	// SplitHorizontalMode splits the image horizontally
	SplitHorizontalMode SplitMode = iota
	// SplitVerticalMode splits the image vertically
	SplitVerticalMode
)

// ParseSplitMode accepts "horizontal" or "vertical" and their first letter.
func ParseSplitMode(s string) (SplitMode, error) {
	switch s {
	case "h", "horizontal":
		return SplitHorizontalMode, nil
	case "v", "vertical":
		return SplitVerticalMode, nil
	}
	return 0, fmt.Errorf("unknown split mode %q", s)
}

func split(base image.Rectangle, n int, mode SplitMode) (rects []image.Rectangle) {
	var width, height int
	if mode == SplitHorizontalMode {
		width = base.Dx() / n
		height = base.Dy()
	} else {
		width = base.Dx()
		height = base.Dy() / n
	}
	if width == 0 || height == 0 {
		return
	}
	for i := range n {
		var r image.Rectangle
		if mode == SplitHorizontalMode {
			r = image.Rect(
				base.Min.X+width*i, base.Min.Y,
				base.Min.X+width*(i+1), base.Min.Y+height,
			)
		} else {
			r = image.Rect(
				base.Min.X, base.Min.Y+height*i,
				base.Min.X+width, base.Min.Y+height*(i+1),
			)
		}
		rects = append(rects, r)
	}
	return
}

// crop copies the rows of r out of img. r must lie inside img.
func crop(img *RGB, r image.Rectangle) *RGB {
	dst := newRGB(r.Dx(), r.Dy())
	row := r.Dx() * 3
	for y := range r.Dy() {
		i := img.Offset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[y*row:(y+1)*row], img.Pix[i:i+row])
	}
	return dst
}

// Split splits an image into n smaller images based on the specified split mode.
// Remainder columns or rows that do not fill a whole part are dropped.
// If n is less than 1, or the image cannot be split, it returns an error.
func Split(img *RGB, n int, mode SplitMode) (imgs []*RGB, err error) {
	if n < 1 {
		return nil, errors.New("invalid number of parts: must be at least 1")
	}
	rects := split(image.Rect(0, 0, img.Width, img.Height), n, mode)
	if len(rects) == 0 {
		return nil, errors.New("failed to split the image: invalid dimensions or n is too large")
	}
	for _, rect := range rects {
		imgs = append(imgs, crop(img, rect))
	}
	return
}

// SplitHorizontal splits an image into n parts horizontally.
func SplitHorizontal(img *RGB, n int) ([]*RGB, error) {
	return Split(img, n, SplitHorizontalMode)
}

// SplitVertical splits an image into n parts vertically.
func SplitVertical(img *RGB, n int) ([]*RGB, error) {
	return Split(img, n, SplitVerticalMode)
}
