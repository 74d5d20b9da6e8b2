package imgfx

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ToGray converts an RGB buffer to gray by averaging the three channels.
func ToGray(src *RGB) *Gray {
	dst := newGray(src.Width, src.Height)
	for i, j := 0, 0; j < len(dst.Pix); i, j = i+3, j+1 {
		s := src.Pix[i : i+3 : i+3]
		dst.Pix[j] = uint8((int(s[0]) + int(s[1]) + int(s[2])) / 3)
	}
	return dst
}

// GrayToRGB returns an RGB buffer with the level of src in all three channels.
func GrayToRGB(src *Gray) *RGB {
	dst := newRGB(src.Width, src.Height)
	for i, j := 0, 0; j < len(src.Pix); i, j = i+3, j+1 {
		d := dst.Pix[i : i+3 : i+3]
		d[0], d[1], d[2] = src.Pix[j], src.Pix[j], src.Pix[j]
	}
	return dst
}

// SplitRGB splits src into one gray buffer per channel.
func SplitRGB(src *RGB) (r, g, b *Gray) {
	r = newGray(src.Width, src.Height)
	g = newGray(src.Width, src.Height)
	b = newGray(src.Width, src.Height)
	for i, j := 0, 0; j < len(r.Pix); i, j = i+3, j+1 {
		r.Pix[j] = src.Pix[i]
		g.Pix[j] = src.Pix[i+1]
		b.Pix[j] = src.Pix[i+2]
	}
	return
}

// MergeRGB is the inverse of SplitRGB.
func MergeRGB(r, g, b *Gray) (*RGB, error) {
	if !r.sameSize(g) || !r.sameSize(b) {
		return nil, ErrSizeMismatch
	}
	dst := newRGB(r.Width, r.Height)
	dst.merge(r, g, b)
	return dst, nil
}

// merge writes the planes into p, which must have their size.
func (p *RGB) merge(r, g, b *Gray) {
	for i, j := 0, 0; j < len(r.Pix); i, j = i+3, j+1 {
		d := p.Pix[i : i+3 : i+3]
		d[0], d[1], d[2] = r.Pix[j], g.Pix[j], b.Pix[j]
	}
}

// HSVColor converts one RGB color to hue in degrees, saturation and value in percent.
func HSVColor(r, g, b uint8) (h, s, v uint16) {
	hf, sf, vf := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsv()
	h = uint16(math.Round(hf))
	if h >= 360 {
		h -= 360
	}
	return h, uint16(math.Round(sf * 100)), uint16(math.Round(vf * 100))
}

// RGBColor converts one HSV color back to RGB. Out of range inputs are clamped,
// hue is taken modulo 360.
func RGBColor(h, s, v uint16) (r, g, b uint8) {
	return colorful.Hsv(
		float64(h%360),
		float64(min(s, 100))/100,
		float64(min(v, 100))/100,
	).Clamped().RGB255()
}

// RGBToHSV converts src to a new HSV buffer.
func RGBToHSV(src *RGB) *HSV {
	dst := newHSV(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		s := src.Pix[i : i+3 : i+3]
		d := dst.Pix[i : i+3 : i+3]
		d[0], d[1], d[2] = HSVColor(s[0], s[1], s[2])
	}
	return dst
}

// HSVToRGB converts src to a new RGB buffer.
func HSVToRGB(src *HSV) *RGB {
	dst := newRGB(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		s := src.Pix[i : i+3 : i+3]
		d := dst.Pix[i : i+3 : i+3]
		d[0], d[1], d[2] = RGBColor(s[0], s[1], s[2])
	}
	return dst
}

// Plane returns the saturation or value channel of p as a gray buffer.
// Hue does not fit 8 bits and yields a DomainRangeError.
func (p *HSV) Plane(c Channel) (*Gray, error) {
	if c != Saturation && c != Value {
		return nil, &DomainRangeError{Name: "hsv plane", Value: float64(c), Min: float64(Saturation), Max: float64(Value)}
	}
	g := newGray(p.Width, p.Height)
	for i, j := int(c), 0; j < len(g.Pix); i, j = i+3, j+1 {
		g.Pix[j] = uint8(min(p.Pix[i], 100))
	}
	return g, nil
}

// SetPlane replaces the saturation or value channel of p with g, clamped to [0, 100].
func (p *HSV) SetPlane(c Channel, g *Gray) error {
	if c != Saturation && c != Value {
		return &DomainRangeError{Name: "hsv plane", Value: float64(c), Min: float64(Saturation), Max: float64(Value)}
	}
	if g.Width != p.Width || g.Height != p.Height {
		return ErrSizeMismatch
	}
	for i, j := int(c), 0; j < len(g.Pix); i, j = i+3, j+1 {
		p.Pix[i] = uint16(min(g.Pix[j], 100))
	}
	return nil
}

// RGBToYCrCb converts src to luma/chroma space. The result stores Y, Cr and Cb
// in the Luma, ChromaRed and ChromaBlue channels, with chroma centered on 128.
func RGBToYCrCb(src *RGB) *RGB {
	dst := newRGB(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		s := src.Pix[i : i+3 : i+3]
		d := dst.Pix[i : i+3 : i+3]
		y, cb, cr := color.RGBToYCbCr(s[0], s[1], s[2])
		d[Luma], d[ChromaRed], d[ChromaBlue] = y, cr, cb
	}
	return dst
}

// YCrCbToRGB is the inverse of RGBToYCrCb.
func YCrCbToRGB(src *RGB) *RGB {
	dst := newRGB(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		s := src.Pix[i : i+3 : i+3]
		d := dst.Pix[i : i+3 : i+3]
		d[0], d[1], d[2] = color.YCbCrToRGB(s[Luma], s[ChromaBlue], s[ChromaRed])
	}
	return dst
}
