package imgfx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniform returns a w×h RGB buffer filled with one color.
func uniform(w, h int, r, g, b uint8) *RGB {
	img := newRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetPixel(x, y, r, g, b)
		}
	}
	return img
}

func TestNewBuffers(t *testing.T) {
	g, err := NewGray(3, 2)
	require.NoError(t, err)
	assert.Len(t, g.Pix, 6)
	assert.Zero(t, cap(g.Pix)%alignment)

	rgb, err := NewRGB(5, 7)
	require.NoError(t, err)
	assert.Len(t, rgb.Pix, 105)
	assert.Equal(t, 128, cap(rgb.Pix))

	hsv, err := NewHSV(2, 2)
	require.NoError(t, err)
	assert.Len(t, hsv.Pix, 12)
}

func TestAllocationError(t *testing.T) {
	for _, tc := range []struct{ w, h int }{
		{0, 1},
		{1, 0},
		{-3, 4},
		{1 << 20, 1 << 20},
		{1 << 62, 4},
	} {
		_, err := NewRGB(tc.w, tc.h)
		var allocErr *AllocationError
		if assert.True(t, errors.As(err, &allocErr), "%dx%d", tc.w, tc.h) {
			assert.Equal(t, tc.w, allocErr.Width)
			assert.Equal(t, 3, allocErr.Channels)
		}
	}
	_, err := NewGray(MaxBufferSize+1, 1)
	assert.Error(t, err)
	_, err = NewHSV(MaxBufferSize/6+1, 1)
	assert.Error(t, err)
}

func TestOffsetPixel(t *testing.T) {
	img := newRGB(4, 3)
	assert.Equal(t, (2*4+1)*3, img.Offset(1, 2))
	img.SetPixel(1, 2, 10, 20, 30)
	r, g, b := img.Pixel(1, 2)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
	assert.Equal(t, uint8(20), img.Get(img.Offset(1, 2)+1))

	img.Set(0, 7)
	assert.Equal(t, uint8(7), img.Pix[0])

	gray := newGray(4, 3)
	assert.Equal(t, 9, gray.Offset(1, 2))
	gray.Set(9, 42)
	assert.Equal(t, uint8(42), gray.Get(9))
}

func TestClone(t *testing.T) {
	img := uniform(2, 2, 1, 2, 3)
	c := img.Clone()
	c.Pix[0] = 99
	assert.Equal(t, uint8(1), img.Pix[0])

	g := newGray(2, 2)
	gc := g.Clone()
	gc.Pix[0] = 99
	assert.Zero(t, g.Pix[0])

	hsv := newHSV(1, 1)
	hc := hsv.Clone()
	hc.Set(0, 300)
	assert.Zero(t, hsv.Get(0))
}

func TestRGBPlane(t *testing.T) {
	img := uniform(3, 2, 10, 20, 30)
	g, err := img.Plane(Green)
	require.NoError(t, err)
	for _, v := range g.Pix {
		assert.Equal(t, uint8(20), v)
	}

	g.Pix[0] = 200
	require.NoError(t, img.SetPlane(Blue, g))
	r, gg, b := img.Pixel(0, 0)
	assert.Equal(t, [3]uint8{10, 20, 200}, [3]uint8{r, gg, b})

	assert.ErrorIs(t, img.SetPlane(Red, newGray(2, 2)), ErrSizeMismatch)
	var rangeErr *DomainRangeError
	assert.ErrorAs(t, img.SetPlane(Channel(3), g), &rangeErr)
	assert.ErrorAs(t, img.SetPlane(Channel(-1), g), &rangeErr)

	for _, c := range []Channel{-1, 3, 5} {
		_, err := img.Plane(c)
		assert.ErrorAs(t, err, &rangeErr, "channel %d", c)
	}
}
