package imgfx

import (
	"math"
	"math/rand/v2"
)

// ArgentiqueOption tunes the film look applied by Argentique.
type ArgentiqueOption struct {
	// Desaturate is removed from the saturation, in percent.
	Desaturate int
	// Contrast is the IncreaseContrast factor. Values below 1 flatten the image.
	Contrast float64
	Vignette float64
	Grain    int
}

// InfraredOption tunes the false-color look applied by Infrared.
type InfraredOption struct {
	// HueShift rotates the hue by that many degrees instead of swapping red and blue when non-zero.
	HueShift     int
	Contrast     float64
	Desaturate   int
	Boost        int
	BoostChannel Channel
}

var (
	defaultArgentique = ArgentiqueOption{Desaturate: 10, Contrast: 0.8, Vignette: 40, Grain: 20}
	defaultInfrared   = InfraredOption{Contrast: 1.3, Desaturate: 20, Boost: 30, BoostChannel: Red}
)

// NewArgentiqueOption returns the default argentique settings.
func NewArgentiqueOption() *ArgentiqueOption {
	o := defaultArgentique
	return &o
}

// NewInfraredOption returns the default infrared settings.
func NewInfraredOption() *InfraredOption {
	o := defaultInfrared
	return &o
}

// Argentique gives img a film look: lower saturation and contrast, then a
// vignette and grain. A nil option uses the defaults.
func Argentique(img *RGB, option *ArgentiqueOption) {
	if option == nil {
		option = &defaultArgentique
	}
	AdjustSaturation(img, -option.Desaturate)
	IncreaseContrast(img, option.Contrast)
	Vignette(img, option.Vignette)
	Grain(img, option.Grain)
}

// Infrared imitates infrared film. A nil option uses the defaults.
func Infrared(img *RGB, option *InfraredOption) error {
	if option == nil {
		option = &defaultInfrared
	}
	if !option.BoostChannel.valid() {
		return channelError(option.BoostChannel)
	}
	if option.HueShift != 0 {
		AdjustHue(img, option.HueShift)
	} else {
		SwapChannels(img, Red, Blue)
	}
	IncreaseContrast(img, option.Contrast)
	AdjustSaturation(img, -option.Desaturate)
	return IncreaseChannel(img, option.Boost, option.BoostChannel)
}

// Glow blurs a copy of img with a Gaussian of deviation radius, drops the
// blurred values below threshold and adds the rest back onto img.
func Glow(img *RGB, radius float64, threshold uint8) error {
	if radius <= 0 {
		return nil
	}
	// with replicated borders a kernel wider than twice the image adds nothing
	size := min(GaussianSize(radius), 2*max(img.Width, img.Height)+1)
	k, err := GaussianKernel(size, radius)
	if err != nil {
		return err
	}
	ApplyChannels(img, func(g *Gray) *Gray {
		halo, _ := Convolve(g, k)
		for i, v := range halo.Pix {
			if v < threshold {
				v = 0
			}
			halo.Pix[i] = uint8(min(int(g.Pix[i])+int(v), 255))
		}
		return halo
	})
	return nil
}

// Negative inverts every channel of img.
func Negative(img *RGB) {
	for i, v := range img.Pix {
		img.Pix[i] = 255 - v
	}
}

// Grayscale replaces every pixel of img with the average of its channels.
func Grayscale(img *RGB) {
	for i := 0; i < len(img.Pix); i += 3 {
		s := img.Pix[i : i+3 : i+3]
		v := uint8((int(s[0]) + int(s[1]) + int(s[2])) / 3)
		s[0], s[1], s[2] = v, v, v
	}
}

// IncreaseContrast scales the distance of every channel to 128 by factor.
func IncreaseContrast(img *RGB, factor float64) {
	for i, v := range img.Pix {
		img.Pix[i] = clamp((float64(v)-128)*factor + 128)
	}
}

func blackPointTable(threshold uint8) (lut [256]uint8) {
	if threshold == 255 {
		return
	}
	for v := int(threshold) + 1; v < 256; v++ {
		lut[v] = clamp(float64((v-int(threshold))*255) / float64(255-threshold))
	}
	return
}

// AdjustBlackPoint maps levels up to threshold to 0 and spreads the remaining
// levels back over [0, 255].
func AdjustBlackPoint(src *Gray, threshold uint8) *Gray {
	lut := blackPointTable(threshold)
	dst := newGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = lut[v]
	}
	return dst
}

// AdjustBlackPointRGB applies AdjustBlackPoint to every channel of img.
func AdjustBlackPointRGB(img *RGB, threshold uint8) {
	lut := blackPointTable(threshold)
	for i, v := range img.Pix {
		img.Pix[i] = lut[v]
	}
}

// Vignette darkens img by intensity times the squared distance to the center,
// measured in units of the shorter half side.
func Vignette(img *RGB, intensity float64) {
	cx, cy := img.Width/2, img.Height/2
	norm := float64(max(min(cx, cy), 1))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy)) / norm
			shade := int(intensity * d * d)
			i := img.Offset(x, y)
			s := img.Pix[i : i+3 : i+3]
			s[0] = uint8(clampInt(int(s[0])-shade, 0, 255))
			s[1] = uint8(clampInt(int(s[1])-shade, 0, 255))
			s[2] = uint8(clampInt(int(s[2])-shade, 0, 255))
		}
	}
}

// Grain adds a uniform random offset in [-intensity, intensity] to each pixel,
// the same for its three channels.
func Grain(img *RGB, intensity int) {
	if intensity <= 0 {
		return
	}
	for i := 0; i < len(img.Pix); i += 3 {
		n := randRange(-intensity, intensity)
		s := img.Pix[i : i+3 : i+3]
		s[0] = uint8(clampInt(int(s[0])+n, 0, 255))
		s[1] = uint8(clampInt(int(s[1])+n, 0, 255))
		s[2] = uint8(clampInt(int(s[2])+n, 0, 255))
	}
}

func randRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return rand.N(max-min+1) + min
}

func channelError(c Channel) error {
	return &DomainRangeError{Name: "channel", Value: float64(c), Min: 0, Max: 2}
}

// SwapChannels exchanges channels c1 and c2 of every pixel.
func SwapChannels(img *RGB, c1, c2 Channel) error {
	if !c1.valid() {
		return channelError(c1)
	}
	if !c2.valid() {
		return channelError(c2)
	}
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i+int(c1)], img.Pix[i+int(c2)] = img.Pix[i+int(c2)], img.Pix[i+int(c1)]
	}
	return nil
}

// IncreaseChannel adds amount to channel c of every pixel.
func IncreaseChannel(img *RGB, amount int, c Channel) error {
	if !c.valid() {
		return channelError(c)
	}
	for i := int(c); i < len(img.Pix); i += 3 {
		img.Pix[i] = uint8(clampInt(int(img.Pix[i])+amount, 0, 255))
	}
	return nil
}

// IncreaseYCrCbChannel adds amount to luma/chroma channel c of img.
func IncreaseYCrCbChannel(img *RGB, amount int, c Channel) error {
	if !c.valid() {
		return channelError(c)
	}
	ycc := RGBToYCrCb(img)
	IncreaseChannel(ycc, amount, c)
	copy(img.Pix, YCrCbToRGB(ycc).Pix)
	return nil
}

// ShiftSaturation adds delta to the saturation of hsv, clamped to [0, 100].
func ShiftSaturation(hsv *HSV, delta int) { shiftHSV(hsv, Saturation, delta) }

// ShiftValue adds delta to the value of hsv, clamped to [0, 100].
func ShiftValue(hsv *HSV, delta int) { shiftHSV(hsv, Value, delta) }

// ShiftHue rotates the hue of hsv by delta degrees.
func ShiftHue(hsv *HSV, delta int) { shiftHSV(hsv, Hue, delta) }

func shiftHSV(hsv *HSV, c Channel, delta int) {
	for i := int(c); i < len(hsv.Pix); i += 3 {
		v := int(hsv.Pix[i]) + delta
		if c == Hue {
			v = ((v % 360) + 360) % 360
		} else {
			v = clampInt(v, 0, 100)
		}
		hsv.Pix[i] = uint16(v)
	}
}

// AdjustSaturation changes the saturation of img by delta percent.
func AdjustSaturation(img *RGB, delta int) { throughHSV(img, Saturation, delta) }

// AdjustValue changes the value of img by delta percent.
func AdjustValue(img *RGB, delta int) { throughHSV(img, Value, delta) }

// AdjustHue rotates the hue of img by delta degrees.
func AdjustHue(img *RGB, delta int) { throughHSV(img, Hue, delta) }

func throughHSV(img *RGB, c Channel, delta int) {
	hsv := RGBToHSV(img)
	shiftHSV(hsv, c, delta)
	copy(img.Pix, HSVToRGB(hsv).Pix)
}
