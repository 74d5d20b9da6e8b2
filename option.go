package imgfx

import (
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"time"
)

var defaultFormat = FormatOption{Format: JPEG}

// Options represents options that can be used to configure a image operation.
type Options struct {
	Resize  *ResizeOption
	Effects []Effect
	// Rotate is applied after the effects, counter-clockwise in degrees.
	Rotate    float64
	Watermark *WatermarkOption
	Format    FormatOption
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{Format: defaultFormat}
}

// SetWatermark sets the value for the Watermark field.
func (opts *Options) SetWatermark(mark *RGB, opacity uint) *Options {
	opts.Watermark = &WatermarkOption{Mark: mark}
	if opacity == 0 {
		opts.Watermark.Opacity = defaultOpacity
	} else {
		opts.Watermark.Opacity = uint8(min(opacity, 255))
	}
	return opts
}

// SetResize sets the value for the Resize field.
func (opts *Options) SetResize(width, height int, percent float64) *Options {
	opts.Resize = &ResizeOption{Width: width, Height: height, Percent: percent}
	return opts
}

// SetRotate sets the value for the Rotate field.
func (opts *Options) SetRotate(angle float64) *Options {
	opts.Rotate = angle
	return opts
}

// AddEffect parses each effect and appends it to the Effects field.
func (opts *Options) AddEffect(effects ...string) error {
	for _, s := range effects {
		e, err := ParseEffect(s)
		if err != nil {
			return err
		}
		opts.Effects = append(opts.Effects, e)
	}
	return nil
}

// SetFormat sets the value for the Format field.
func (opts *Options) SetFormat(f string, options ...EncodeOption) (err error) {
	opts.Format, err = setFormat(f, options...)
	return
}

// Apply runs the effects in order on a copy of img, then rotates it and adds
// the watermark. img itself is left untouched.
func (opts *Options) Apply(img *RGB) (*RGB, error) {
	if err := checkAngle(opts.Rotate); err != nil {
		return nil, err
	}
	dst := img.Clone()
	for _, e := range opts.Effects {
		start := time.Now()
		if err := e.Apply(dst); err != nil {
			return nil, fmt.Errorf("effect %s: %w", e.Name, err)
		}
		Logger().Debug("Effect applied", "effect", e.Name, "elapsed", time.Since(start))
	}
	if opts.Rotate != 0 {
		start := time.Now()
		dst = Rotate(dst, opts.Rotate)
		Logger().Debug("Image rotated", "angle", opts.Rotate, "elapsed", time.Since(start))
	}
	if opts.Watermark != nil {
		if err := opts.Watermark.do(dst); err != nil {
			return nil, err
		}
		Logger().Debug("Watermark added", "opacity", opts.Watermark.Opacity, "random", opts.Watermark.Random)
	}
	return dst, nil
}

// Convert image according options opts.
func (opts *Options) Convert(w io.Writer, img *RGB) (err error) {
	if opts.Resize != nil {
		if img, err = Resize(img, opts.Resize); err != nil {
			return
		}
	}
	if img, err = opts.Apply(img); err != nil {
		return
	}

	if reflect.DeepEqual(opts.Format, FormatOption{}) {
		opts.Format = defaultFormat
	}

	return opts.Format.Encode(w, img)
}

// ConvertExt convert filename's ext according image format.
func (opts *Options) ConvertExt(filename string) string {
	return filename[0:len(filename)-len(filepath.Ext(filename))] + "." + formatExts[opts.Format.Format]
}
