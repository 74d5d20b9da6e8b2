package imgfx

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// stretchMax is the upper bound of the range Stretch maps onto.
const stretchMax = 100

// Histogram counts the pixels of each level from 0 to MaxLevel.
type Histogram []uint64

// NewHistogram counts the levels of src in [0, maxLevel]. Levels above maxLevel are ignored.
func NewHistogram(src *Gray, maxLevel int) (Histogram, error) {
	if maxLevel < 1 || maxLevel > 255 {
		return nil, &DomainRangeError{Name: "max level", Value: float64(maxLevel), Min: 1, Max: 255}
	}
	h := make(Histogram, maxLevel+1)
	for _, v := range src.Pix {
		if int(v) <= maxLevel {
			h[v]++
		}
	}
	return h, nil
}

// MaxLevel returns the highest level h counts.
func (h Histogram) MaxLevel() int { return len(h) - 1 }

// Total returns the number of counted pixels.
func (h Histogram) Total() (n uint64) {
	for _, c := range h {
		n += c
	}
	return
}

// Cumulative returns the running sum of h.
func (h Histogram) Cumulative() Histogram {
	cum := make(Histogram, len(h))
	var sum uint64
	for i, c := range h {
		sum += c
		cum[i] = sum
	}
	return cum
}

// minCount and maxCount return the first level holding the smallest and the
// largest count.
func (h Histogram) minCount() (level int) {
	for i, c := range h {
		if c < h[level] {
			level = i
		}
	}
	return
}

func (h Histogram) maxCount() (level int) {
	for i, c := range h {
		if c > h[level] {
			level = i
		}
	}
	return
}

// WriteTo writes one count per line in increasing level order.
func (h Histogram) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	buf := make([]byte, 0, 24)
	for _, c := range h {
		buf = strconv.AppendUint(buf[:0], c, 10)
		buf = append(buf, '\n')
		m, err := bw.Write(buf)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Save writes h to file in the WriteTo format.
func (h Histogram) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := h.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Equalize remaps src through the cumulative distribution of h, which must
// have been built from src.
func Equalize(src *Gray, h Histogram) *Gray {
	cum := h.Cumulative()
	maxLevel := h.MaxLevel()
	total := uint64(len(src.Pix))
	dst := newGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = uint8(uint64(maxLevel) * cum[min(int(v), maxLevel)] / total)
	}
	return dst
}

// Stretch maps src linearly so that the level with the smallest count in h goes
// to 0 and the level with the largest count goes to 100, clamping the result to
// [0, 100]. The anchors are count extrema, not the darkest and brightest levels.
func Stretch(src *Gray, h Histogram) *Gray {
	dst := newGray(src.Width, src.Height)
	bInf, bSup := h.minCount(), h.maxCount()
	if bInf == bSup {
		return dst
	}
	for i, v := range src.Pix {
		dst.Pix[i] = uint8(clampInt((int(v)-bInf)*stretchMax/(bSup-bInf), 0, stretchMax))
	}
	return dst
}

// EqualizeRGB equalizes each channel of img independently.
func EqualizeRGB(img *RGB) {
	ApplyChannels(img, func(g *Gray) *Gray {
		h, _ := NewHistogram(g, 255)
		return Equalize(g, h)
	})
}

// EqualizeHSV equalizes the value channel of img in HSV space.
func EqualizeHSV(img *RGB) {
	remapValue(img, Equalize)
}

// StretchHSV stretches the value channel of img in HSV space.
func StretchHSV(img *RGB) {
	remapValue(img, Stretch)
}

func remapValue(img *RGB, fn func(*Gray, Histogram) *Gray) {
	hsv := RGBToHSV(img)
	v, _ := hsv.Plane(Value)
	h, _ := NewHistogram(v, 100)
	hsv.SetPlane(Value, fn(v, h))
	copy(img.Pix, HSVToRGB(hsv).Pix)
}

// EqualizeLuma equalizes the luma of img, leaving its chroma untouched.
func EqualizeLuma(img *RGB) {
	ycc := RGBToYCrCb(img)
	y, _ := ycc.Plane(Luma)
	h, _ := NewHistogram(y, 255)
	ycc.SetPlane(Luma, Equalize(y, h))
	copy(img.Pix, YCrCbToRGB(ycc).Pix)
}
