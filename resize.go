package imgfx

import "github.com/disintegration/imaging"

// ResizeOption is resize option
type ResizeOption struct {
	Width   int
	Height  int
	Percent float64
}

func (r *ResizeOption) size(width int) (int, int) {
	if r.Width == 0 && r.Height == 0 {
		return int(float64(width) * r.Percent / 100), 0
	}
	return r.Width, r.Height
}

// Resize resizes img with the Lanczos filter and returns a new buffer.
// If one of width or height is 0, the image aspect ratio is preserved.
// Percent is used only when both width and height are 0.
func Resize(img *RGB, option *ResizeOption) (*RGB, error) {
	width, height := option.size(img.Width)
	return FromImage(imaging.Resize(img.Image(), width, height, imaging.Lanczos))
}
