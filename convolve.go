package imgfx

import "math"

// Convolve applies k to src and returns the result as a new buffer.
// Pixels outside the image take the value of the nearest edge pixel, so the
// border is computed like the interior.
func Convolve(src *Gray, k Kernel) (*Gray, error) {
	if !k.valid() {
		return nil, &InvalidKernelError{k.size, k.size}
	}
	dst := newGray(src.Width, src.Height)
	for i, v := range response(src, k) {
		dst.Pix[i] = clamp(v)
	}
	return dst, nil
}

// response returns the unclamped weighted sums of k over src.
func response(src *Gray, k Kernel) []float64 {
	w, h := src.Width, src.Height
	r := k.Radius()
	out := make([]float64, len(src.Pix))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for dy := -r; dy <= r; dy++ {
				row := clampInt(y+dy, 0, h-1) * w
				weights := k.weights[(dy+r)*k.size : (dy+r+1)*k.size]
				for dx := -r; dx <= r; dx++ {
					sum += float64(src.Pix[row+clampInt(x+dx, 0, w-1)]) * weights[dx+r]
				}
			}
			out[y*w+x] = sum
		}
	}
	return out
}

// SobelEdges returns the gradient magnitude of src.
func SobelEdges(src *Gray) *Gray {
	gx := response(src, sobelHorizontal)
	gy := response(src, sobelVertical)
	dst := newGray(src.Width, src.Height)
	for i := range dst.Pix {
		dst.Pix[i] = clamp(math.Hypot(gx[i], gy[i]))
	}
	return dst
}

// Sharpen adds k times the Laplacian of src to src. Negative k softens.
func Sharpen(src *Gray, k float64) *Gray {
	lap := response(src, laplacian)
	dst := newGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = clamp(float64(v) + k*lap[i])
	}
	return dst
}

// Blur convolves src with a size×size Gaussian kernel of deviation sigma.
func Blur(src *Gray, size int, sigma float64) (*Gray, error) {
	k, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(src, k)
}

// ApplyChannels runs fn on each channel of img and stores the results in img.
func ApplyChannels(img *RGB, fn func(*Gray) *Gray) {
	r, g, b := SplitRGB(img)
	img.merge(fn(r), fn(g), fn(b))
}

// ApplyGray runs fn on the gray version of img and stores the result in all
// three channels of img.
func ApplyGray(img *RGB, fn func(*Gray) *Gray) {
	g := fn(ToGray(img))
	img.merge(g, g, g)
}

// BlurRGB blurs each channel of img in place.
func BlurRGB(img *RGB, size int, sigma float64) error {
	k, err := GaussianKernel(size, sigma)
	if err != nil {
		return err
	}
	ApplyChannels(img, func(g *Gray) *Gray {
		out, _ := Convolve(g, k)
		return out
	})
	return nil
}

// SharpenRGB adds k times the Laplacian of the gray version of img to every
// channel of img.
func SharpenRGB(img *RGB, k float64) {
	lap := response(ToGray(img), laplacian)
	for i, j := 0, 0; j < len(lap); i, j = i+3, j+1 {
		d := img.Pix[i : i+3 : i+3]
		delta := k * lap[j]
		d[0] = clamp(float64(d[0]) + delta)
		d[1] = clamp(float64(d[1]) + delta)
		d[2] = clamp(float64(d[2]) + delta)
	}
}

// clamp rounds and clamps float64 value to fit into uint8.
func clamp(x float64) uint8 {
	v := int64(x + 0.5)
	if v > 255 {
		return 255
	}
	if v > 0 {
		return uint8(v)
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
