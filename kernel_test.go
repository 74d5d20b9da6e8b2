package imgfx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKernel(t *testing.T) {
	for _, rows := range [][][]float64{
		nil,
		{{1, 2}, {3, 4}},
		{{1, 2, 3}, {4, 5}, {6, 7, 8}},
		{{1, 2, 3}},
	} {
		_, err := NewKernel(rows)
		var kernelErr *InvalidKernelError
		assert.ErrorAs(t, err, &kernelErr, "%v", rows)
	}

	k, err := NewKernel([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, k.Size())
	assert.Equal(t, 1, k.Radius())
	assert.Equal(t, 5.0, k.At(0, 0))
	assert.Equal(t, 3.0, k.At(1, -1))
	assert.Equal(t, 7.0, k.At(-1, 1))
	assert.Equal(t, 45.0, k.Sum())
}

func TestGaussianKernel(t *testing.T) {
	for _, tc := range []struct {
		size  int
		sigma float64
	}{
		{1, 1},
		{3, 0.5},
		{5, 1},
		{7, 2.5},
		{15, 10},
	} {
		k, err := GaussianKernel(tc.size, tc.sigma)
		require.NoError(t, err)
		assert.InDelta(t, 1, k.Sum(), 1e-9)
		r := k.Radius()
		for d := 1; d <= r; d++ {
			assert.Equal(t, k.At(d, 0), k.At(-d, 0))
			assert.Equal(t, k.At(0, d), k.At(d, 0))
			assert.Less(t, k.At(d, 0), k.At(d-1, 0))
		}
	}

	_, err := GaussianKernel(4, 1)
	var kernelErr *InvalidKernelError
	assert.ErrorAs(t, err, &kernelErr)
	_, err = GaussianKernel(0, 1)
	assert.ErrorAs(t, err, &kernelErr)

	var rangeErr *DomainRangeError
	_, err = GaussianKernel(3, 0)
	assert.ErrorAs(t, err, &rangeErr)
	_, err = GaussianKernel(3, -1)
	assert.ErrorAs(t, err, &rangeErr)
	_, err = GaussianKernel(3, math.NaN())
	assert.ErrorAs(t, err, &rangeErr)

	var allocErr *AllocationError
	_, err = GaussianKernel(MaxKernelSize+2, 1)
	assert.ErrorAs(t, err, &allocErr)
	_, err = GaussianKernel(100001, 1)
	assert.ErrorAs(t, err, &allocErr)
}

func TestGaussianSize(t *testing.T) {
	assert.Equal(t, 7, GaussianSize(1))
	assert.Equal(t, 5, GaussianSize(0.5))
	assert.Equal(t, 9, GaussianSize(1.2))
	assert.Equal(t, 1, GaussianSize(0))
	assert.Equal(t, 1, GaussianSize(math.NaN()))
	for _, sigma := range []float64{1e5, 1e9, 1e300, math.Inf(1)} {
		assert.Equal(t, MaxKernelSize, GaussianSize(sigma))
	}
}

func TestFixedKernels(t *testing.T) {
	h, v := SobelKernels()
	assert.Zero(t, h.Sum())
	assert.Zero(t, v.Sum())
	assert.Equal(t, 2.0, h.At(1, 0))
	assert.Equal(t, 2.0, v.At(0, 1))
	lap := LaplacianKernel()
	assert.Zero(t, lap.Sum())
	assert.Equal(t, 4.0, lap.At(0, 0))
}
