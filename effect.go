package imgfx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Effect is a named in-place operation on an RGB buffer.
type Effect struct {
	Name  string
	Apply func(*RGB) error
}

func (e Effect) String() string { return e.Name }

type effectBuilder struct {
	minArgs, maxArgs int
	usage            string
	build            func(args []string) (func(*RGB) error, error)
}

func inPlace(fn func(*RGB)) func(*RGB) error {
	return func(img *RGB) error {
		fn(img)
		return nil
	}
}

var registry = map[string]effectBuilder{
	"argentique": {0, 0, "argentique", func([]string) (func(*RGB) error, error) {
		return inPlace(func(img *RGB) { Argentique(img, nil) }), nil
	}},
	"infrared": {0, 1, "infrared[=hueshift]", func(args []string) (func(*RGB) error, error) {
		opt := NewInfraredOption()
		if len(args) == 1 {
			shift, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, err
			}
			opt.HueShift = shift
		}
		return func(img *RGB) error { return Infrared(img, opt) }, nil
	}},
	"glow": {1, 2, "glow=radius[:threshold]", func(args []string) (func(*RGB) error, error) {
		radius, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		var threshold uint8
		if len(args) == 2 {
			if threshold, err = parseLevel(args[1]); err != nil {
				return nil, err
			}
		}
		return func(img *RGB) error { return Glow(img, radius, threshold) }, nil
	}},
	"negative":  {0, 0, "negative", constant(Negative)},
	"grayscale": {0, 0, "grayscale", constant(Grayscale)},
	"stretch":   {0, 0, "stretch", constant(StretchHSV)},
	"fliph":     {0, 0, "fliph", constant(FlipH)},
	"flipv":     {0, 0, "flipv", constant(FlipV)},

	"saturation": {1, 1, "saturation=delta", delta(AdjustSaturation)},
	"value":      {1, 1, "value=delta", delta(AdjustValue)},
	"hue":        {1, 1, "hue=degrees", delta(AdjustHue)},
	"grain":      {1, 1, "grain=intensity", delta(Grain)},
	"contrast": {1, 1, "contrast=factor", func(args []string) (func(*RGB) error, error) {
		factor, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		return inPlace(func(img *RGB) { IncreaseContrast(img, factor) }), nil
	}},
	"vignette": {1, 1, "vignette=intensity", func(args []string) (func(*RGB) error, error) {
		intensity, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		return inPlace(func(img *RGB) { Vignette(img, intensity) }), nil
	}},
	"blackpoint": {1, 1, "blackpoint=level", func(args []string) (func(*RGB) error, error) {
		t, err := parseLevel(args[0])
		if err != nil {
			return nil, err
		}
		return inPlace(func(img *RGB) { AdjustBlackPointRGB(img, t) }), nil
	}},
	"swap": {2, 2, "swap=channel:channel", func(args []string) (func(*RGB) error, error) {
		c1, err := parseChannel(args[0])
		if err != nil {
			return nil, err
		}
		c2, err := parseChannel(args[1])
		if err != nil {
			return nil, err
		}
		return func(img *RGB) error { return SwapChannels(img, c1, c2) }, nil
	}},
	"channel": {2, 2, "channel=channel:amount", channelAmount(IncreaseChannel)},
	"ycrcb":   {2, 2, "ycrcb=channel:amount", channelAmount(IncreaseYCrCbChannel)},
	"blur": {2, 2, "blur=size:sigma", func(args []string) (func(*RGB) error, error) {
		size, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		sigma, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, err
		}
		if _, err := GaussianKernel(size, sigma); err != nil {
			return nil, err
		}
		return func(img *RGB) error { return BlurRGB(img, size, sigma) }, nil
	}},
	"sobel": {0, 1, "sobel[=space]", func(args []string) (func(*RGB) error, error) {
		space, err := optionalSpace(args, 0, SpaceGray)
		if err != nil {
			return nil, err
		}
		return func(img *RGB) error { return DetectEdges(img, space) }, nil
	}},
	"sharpen": {1, 2, "sharpen=k[:space]", func(args []string) (func(*RGB) error, error) {
		k, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return inPlace(func(img *RGB) { SharpenRGB(img, k) }), nil
		}
		space, err := ParseSpace(args[1])
		if err != nil {
			return nil, err
		}
		return func(img *RGB) error { return SharpenIn(img, k, space) }, nil
	}},
	"equalize": {0, 1, "equalize[=space]", func(args []string) (func(*RGB) error, error) {
		space, err := optionalSpace(args, 0, SpaceRGB)
		if err != nil {
			return nil, err
		}
		return func(img *RGB) error { return EqualizeIn(img, space) }, nil
	}},
	"rotate": {1, 1, "rotate=degrees", func(args []string) (func(*RGB) error, error) {
		angle, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		if err := checkAngle(angle); err != nil {
			return nil, err
		}
		return inPlace(func(img *RGB) { img.replace(Rotate(img, angle)) }), nil
	}},
}

func constant(fn func(*RGB)) func([]string) (func(*RGB) error, error) {
	return func([]string) (func(*RGB) error, error) { return inPlace(fn), nil }
}

func delta(fn func(*RGB, int)) func([]string) (func(*RGB) error, error) {
	return func(args []string) (func(*RGB) error, error) {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, err
		}
		return inPlace(func(img *RGB) { fn(img, d) }), nil
	}
}

func channelAmount(fn func(*RGB, int, Channel) error) func([]string) (func(*RGB) error, error) {
	return func(args []string) (func(*RGB) error, error) {
		c, err := parseChannel(args[0])
		if err != nil {
			return nil, err
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		return func(img *RGB) error { return fn(img, amount, c) }, nil
	}
}

func parseLevel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err
}

func optionalSpace(args []string, i int, def Space) (Space, error) {
	if len(args) <= i {
		return def, nil
	}
	return ParseSpace(args[i])
}

// parseChannel accepts r, g, b or their luma/chroma names y, cr, cb.
func parseChannel(s string) (Channel, error) {
	switch strings.ToLower(s) {
	case "r", "red", "y", "luma":
		return Red, nil
	case "g", "green", "cr":
		return Green, nil
	case "b", "blue", "cb":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// ParseEffect builds an effect from its text form "name" or "name=arg[:arg]".
func ParseEffect(s string) (Effect, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.ToLower(name)
	b, ok := registry[name]
	if !ok {
		return Effect{}, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	var args []string
	if hasArg {
		args = strings.Split(arg, ":")
	}
	if len(args) < b.minArgs || len(args) > b.maxArgs {
		return Effect{}, fmt.Errorf("%w: %q, usage: %s", ErrInvalidArgument, s, b.usage)
	}
	apply, err := b.build(args)
	if err != nil {
		return Effect{}, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, s, err)
	}
	return Effect{Name: strings.TrimSpace(s), Apply: apply}, nil
}

// EffectUsage lists the text form of every registered effect.
func EffectUsage() []string {
	var usage []string
	for _, b := range registry {
		usage = append(usage, b.usage)
	}
	sort.Strings(usage)
	return usage
}
