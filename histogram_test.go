package imgfx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistogram(t *testing.T) {
	src := grayFrom(3, 2, 0, 1, 1, 5, 200, 5)
	h, err := NewHistogram(src, 255)
	require.NoError(t, err)
	assert.Equal(t, 255, h.MaxLevel())
	assert.Equal(t, uint64(2), h[1])
	assert.Equal(t, uint64(2), h[5])
	assert.Equal(t, uint64(6), h.Total())

	small, err := NewHistogram(src, 10)
	require.NoError(t, err)
	assert.Len(t, small, 11)
	assert.Equal(t, uint64(5), small.Total())

	for _, level := range []int{0, -1, 256} {
		_, err := NewHistogram(src, level)
		var rangeErr *DomainRangeError
		assert.ErrorAs(t, err, &rangeErr, "max level %d", level)
	}
}

func TestCumulative(t *testing.T) {
	src := grayFrom(4, 4, 0, 3, 3, 9, 9, 9, 15, 15, 100, 255, 2, 2, 2, 2, 0, 1)
	h, err := NewHistogram(src, 255)
	require.NoError(t, err)
	cum := h.Cumulative()
	assert.Equal(t, uint64(len(src.Pix)), cum[h.MaxLevel()])
	for i := 1; i < len(cum); i++ {
		assert.GreaterOrEqual(t, cum[i], cum[i-1])
	}
	assert.Equal(t, uint64(2), cum[0])
	assert.Equal(t, uint64(7), cum[2])
}

func TestEqualize(t *testing.T) {
	src := newGray(4, 4)
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	h, err := NewHistogram(src, 255)
	require.NoError(t, err)
	dst := Equalize(src, h)
	for _, v := range dst.Pix {
		assert.Equal(t, uint8(255), v)
	}

	src = grayFrom(2, 2, 0, 0, 10, 20)
	h, err = NewHistogram(src, 255)
	require.NoError(t, err)
	assert.Equal(t, []uint8{127, 127, 191, 255}, Equalize(src, h).Pix)

	// levels above maxLevel take the full cumulative count
	src = grayFrom(2, 1, 10, 200)
	h, err = NewHistogram(src, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint8{50, 50}, Equalize(src, h).Pix)
}

func TestStretch(t *testing.T) {
	src := grayFrom(4, 4,
		0, 0, 0, 0,
		2, 2, 2, 2,
		5, 5, 5, 5,
		5, 5, 5, 5,
	)
	h, err := NewHistogram(src, 100)
	require.NoError(t, err)
	// lowest count is level 1 (first empty bin), highest is level 5
	dst := Stretch(src, h)
	assert.Equal(t, uint8(0), dst.Pix[0])
	assert.Equal(t, uint8(25), dst.Pix[4])
	assert.Equal(t, uint8(100), dst.Pix[8])

	// levels 1 and 2 land on 33.3 and 66.7, truncated
	src = grayFrom(2, 2, 1, 3, 3, 2)
	h, err = NewHistogram(src, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{33, 100, 100, 66}, Stretch(src, h).Pix)

	src = grayFrom(2, 1, 0, 1)
	h, err = NewHistogram(src, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0}, Stretch(src, h).Pix)
}

func TestHistogramWriteTo(t *testing.T) {
	h, err := NewHistogram(grayFrom(2, 2, 0, 3, 3, 1), 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n0\n2\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	file := filepath.Join(t.TempDir(), "hist.txt")
	require.NoError(t, h.Save(file))
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), b)

	assert.Error(t, h.Save(filepath.Join(t.TempDir(), "missing", "hist.txt")))
}

func TestEqualizeRGB(t *testing.T) {
	img := uniform(3, 3, 128, 128, 128)
	EqualizeRGB(img)
	compare(t, uniform(3, 3, 255, 255, 255), img)

	img = uniform(3, 3, 128, 128, 128)
	EqualizeHSV(img)
	compare(t, uniform(3, 3, 255, 255, 255), img)

	img = uniform(3, 3, 128, 128, 128)
	EqualizeLuma(img)
	compare(t, uniform(3, 3, 255, 255, 255), img)
}

func TestStretchHSV(t *testing.T) {
	img := uniform(2, 2, 100, 100, 100)
	StretchHSV(img)
	// level 0 is the emptiest bin and the single value level the fullest
	compare(t, uniform(2, 2, 255, 255, 255), img)
}
