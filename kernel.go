package imgfx

import "math"

// Kernel is a square, odd-sized matrix of weights used by Convolve.
// Weights are not normalized implicitly.
type Kernel struct {
	size    int
	weights []float64
}

// NewKernel builds a kernel from its rows.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		cols := 0
		if n > 0 {
			cols = len(rows[0])
		}
		return Kernel{}, &InvalidKernelError{n, cols}
	}
	k := Kernel{size: n, weights: make([]float64, 0, n*n)}
	for _, row := range rows {
		if len(row) != n {
			return Kernel{}, &InvalidKernelError{n, len(row)}
		}
		k.weights = append(k.weights, row...)
	}
	return k, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the width (and height) of k.
func (k Kernel) Size() int { return k.size }

// Radius returns Size()/2.
func (k Kernel) Radius() int { return k.size / 2 }

// At returns the weight at offset (dx, dy) from the center, both in [-Radius, Radius].
func (k Kernel) At(dx, dy int) float64 {
	r := k.Radius()
	return k.weights[(dy+r)*k.size+dx+r]
}

// Sum returns the total weight of k.
func (k Kernel) Sum() (sum float64) {
	for _, w := range k.weights {
		sum += w
	}
	return
}

func (k Kernel) valid() bool {
	return k.size > 0 && k.size%2 == 1 && len(k.weights) == k.size*k.size
}

// GaussianKernel returns a size×size Gaussian kernel normalized to a total weight of 1.
func GaussianKernel(size int, sigma float64) (Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return Kernel{}, &InvalidKernelError{size, size}
	}
	if size > MaxKernelSize {
		return Kernel{}, &AllocationError{size, size, 1}
	}
	if !(sigma > 0) {
		return Kernel{}, &DomainRangeError{Name: "sigma", Value: sigma, Min: 0, Max: math.Inf(1)}
	}
	r := size / 2
	k := Kernel{size: size, weights: make([]float64, size*size)}
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			w := math.Exp(-float64(dx*dx+dy*dy) / twoSigmaSq)
			k.weights[(dy+r)*size+dx+r] = w
			sum += w
		}
	}
	for i := range k.weights {
		k.weights[i] /= sum
	}
	return k, nil
}

// MaxKernelSize is the largest side GaussianKernel accepts.
const MaxKernelSize = 1<<13 + 1

// GaussianSize returns the kernel size covering three standard deviations of
// sigma, at most MaxKernelSize.
func GaussianSize(sigma float64) int {
	if !(sigma > 0) {
		return 1
	}
	if sigma*3 >= MaxKernelSize/2 {
		return MaxKernelSize
	}
	return 2*int(math.Ceil(sigma*3)) + 1
}

var (
	sobelHorizontal = mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelVertical = mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
	laplacian = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	})
)

// SobelKernels returns the horizontal and vertical Sobel kernels.
func SobelKernels() (horizontal, vertical Kernel) { return sobelHorizontal, sobelVertical }

// LaplacianKernel returns the 4-neighbour Laplacian kernel.
func LaplacianKernel() Kernel { return laplacian }
