package imgfx

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // decode jpeg format
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "github.com/sunshineplan/pdf"  // decode pdf format
	_ "github.com/sunshineplan/tiff" // decode tiff format
	_ "golang.org/x/image/bmp"       // decode bmp format
	_ "golang.org/x/image/webp"      // decode webp format
)

// Format is an image file format.
// https://github.com/disintegration/imaging
type Format imaging.Format

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
)

var formatExts = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return -1, err
	}
	return Format(f), nil
}

func (f Format) String() string {
	if ext, ok := formatExts[f]; ok {
		return ext
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, err := FormatFromExtension(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
// https://github.com/disintegration/imaging
type EncodeOption imaging.EncodeOption

// Quality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return EncodeOption(imaging.JPEGQuality(quality))
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return EncodeOption(imaging.GIFNumColors(numColors))
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return EncodeOption(imaging.GIFDrawer(drawer))
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return EncodeOption(imaging.PNGCompressionLevel(level))
}

func setFormat(f string, options ...EncodeOption) (fo FormatOption, err error) {
	var format Format
	if format, err = FormatFromExtension(f); err != nil {
		return
	}
	fo.Format = format
	fo.EncodeOption = options
	return
}

// Encode writes img to w in the format of f.
func (f *FormatOption) Encode(w io.Writer, img *RGB) error {
	var opts []imaging.EncodeOption
	for _, i := range f.EncodeOption {
		opts = append(opts, imaging.EncodeOption(i))
	}
	return imaging.Encode(w, img.Image(), imaging.Format(f.Format), opts...)
}

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

// Decode reads an image from r into a new RGB buffer.
func Decode(r io.Reader, opts ...DecodeOption) (*RGB, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(cfg.autoOrientation))
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// DecodeConfig decodes the color model and dimensions of an image that has been encoded in a
// registered format. The string returned is the format name used during format registration.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

// Open loads an image from file.
func Open(file string, opts ...DecodeOption) (*RGB, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, opts...)
}

// Write image according format option
func Write(w io.Writer, img *RGB, option *FormatOption) error {
	return option.Encode(w, img)
}

// Save saves image according format option
func Save(output string, img *RGB, option *FormatOption) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := option.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FromImage copies the color channels of img into a new RGB buffer.
// Alpha is dropped.
func FromImage(img image.Image) (*RGB, error) {
	src := imaging.Clone(img)
	b := src.Bounds()
	dst, err := NewRGB(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("from image: %w", err)
	}
	for y := 0; y < dst.Height; y++ {
		i := y * src.Stride
		j := y * dst.Width * 3
		for x := 0; x < dst.Width; x++ {
			s := src.Pix[i+x*4 : i+x*4+3 : i+x*4+3]
			d := dst.Pix[j+x*3 : j+x*3+3 : j+x*3+3]
			d[0], d[1], d[2] = s[0], s[1], s[2]
		}
	}
	return dst, nil
}

// Image returns p as an opaque *image.NRGBA.
func (p *RGB) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for i, j := 0, 0; i < len(p.Pix); i, j = i+3, j+4 {
		d := img.Pix[j : j+4 : j+4]
		d[0], d[1], d[2], d[3] = p.Pix[i], p.Pix[i+1], p.Pix[i+2], 0xff
	}
	return img
}

// Image returns g as an *image.Gray.
func (g *Gray) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(img.Pix, g.Pix)
	return img
}
