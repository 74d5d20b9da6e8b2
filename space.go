package imgfx

import (
	"fmt"
	"strings"
)

// Space selects the color space a gray filter runs in.
type Space int

const (
	// SpaceRGB filters each channel separately.
	SpaceRGB Space = iota
	// SpaceHSV filters the value plane.
	SpaceHSV
	// SpaceYCrCb filters the luma plane.
	SpaceYCrCb
	// SpaceGray filters the averaged gray and writes it to all channels.
	SpaceGray
)

var spaceNames = [...]string{"rgb", "hsv", "ycrcb", "gray"}

func (s Space) String() string {
	if s < 0 || int(s) >= len(spaceNames) {
		return fmt.Sprintf("Space(%d)", int(s))
	}
	return spaceNames[s]
}

// ParseSpace returns the space named s, case-insensitively.
func ParseSpace(s string) (Space, error) {
	for i, name := range spaceNames {
		if strings.EqualFold(s, name) {
			return Space(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown color space %q", ErrInvalidArgument, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Space) UnmarshalText(text []byte) (err error) {
	*s, err = ParseSpace(string(text))
	return
}

// MarshalText implements encoding.TextMarshaler.
func (s Space) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ApplyIn runs fn on img in the given space and stores the result in img.
func ApplyIn(img *RGB, space Space, fn func(*Gray) *Gray) error {
	switch space {
	case SpaceRGB:
		ApplyChannels(img, fn)
	case SpaceGray:
		ApplyGray(img, fn)
	case SpaceHSV:
		hsv := RGBToHSV(img)
		v, _ := hsv.Plane(Value)
		if err := hsv.SetPlane(Value, fn(v)); err != nil {
			return err
		}
		copy(img.Pix, HSVToRGB(hsv).Pix)
	case SpaceYCrCb:
		ycc := RGBToYCrCb(img)
		y, _ := ycc.Plane(Luma)
		if err := ycc.SetPlane(Luma, fn(y)); err != nil {
			return err
		}
		copy(img.Pix, YCrCbToRGB(ycc).Pix)
	default:
		return &DomainRangeError{Name: "space", Value: float64(space), Min: float64(SpaceRGB), Max: float64(SpaceGray)}
	}
	return nil
}

// DetectEdges replaces img with its Sobel gradient magnitude computed in space.
func DetectEdges(img *RGB, space Space) error {
	return ApplyIn(img, space, SobelEdges)
}

// SharpenIn sharpens img by k times its Laplacian computed in space.
func SharpenIn(img *RGB, k float64, space Space) error {
	return ApplyIn(img, space, func(g *Gray) *Gray { return Sharpen(g, k) })
}

// EqualizeIn equalizes img in space. HSV uses 100 levels, the others 255.
func EqualizeIn(img *RGB, space Space) error {
	switch space {
	case SpaceRGB:
		EqualizeRGB(img)
	case SpaceHSV:
		EqualizeHSV(img)
	case SpaceYCrCb:
		EqualizeLuma(img)
	default:
		return ApplyIn(img, space, func(g *Gray) *Gray {
			h, _ := NewHistogram(g, 255)
			return Equalize(g, h)
		})
	}
	return nil
}
