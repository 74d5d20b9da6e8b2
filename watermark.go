package imgfx

import (
	"fmt"
	"image"
	"math/rand/v2"
)

const defaultOpacity = 128

// WatermarkOption is watermark option
type WatermarkOption struct {
	Mark    *RGB
	Opacity uint8
	Random  bool
	Offset  image.Point
}

// Watermark blends option.Mark over img in place.
func Watermark(img *RGB, option *WatermarkOption) error {
	return option.do(img)
}

// SetRandom sets the option for the Watermark position random or not.
func (w *WatermarkOption) SetRandom(random bool) *WatermarkOption {
	w.Random = random
	return w
}

// SetOffset sets the option for the Watermark offset base center when adding fixed watermark.
func (w *WatermarkOption) SetOffset(offset image.Point) *WatermarkOption {
	w.Offset = offset
	return w
}

func (w *WatermarkOption) do(img *RGB) error {
	if w.Mark == nil {
		return fmt.Errorf("%w: watermark without mark", ErrInvalidArgument)
	}
	var mark, cover *RGB
	var offset image.Point
	if w.Random {
		var err error
		if mark, cover, offset, err = w.randomWatermark(img); err != nil {
			return err
		}
	} else {
		mark, offset = w.fixedWatermark(img)
	}
	blend(img, mark, cover, offset, w.Opacity)
	return nil
}

// randomWatermark shrinks the mark to a third of img if needed, tilts it by up
// to 30 degrees and picks a position inside the middle two thirds of img.
// cover holds how much of each mark pixel is inside the tilted mark.
func (w *WatermarkOption) randomWatermark(img *RGB) (mark, cover *RGB, offset image.Point, err error) {
	mark = w.Mark
	if mark.Width >= img.Width/3 || mark.Height >= img.Height/3 {
		opt := new(ResizeOption)
		if calcResizeXY(img, mark) {
			opt.Width = max(img.Width/3, 1)
		} else {
			opt.Height = max(img.Height/3, 1)
		}
		if mark, err = Resize(mark, opt); err != nil {
			return
		}
	}
	angle := float64(randRange(-30, 30)) + rand.Float64()
	solid := newRGB(mark.Width, mark.Height)
	for i := range solid.Pix {
		solid.Pix[i] = 255
	}
	cover = Rotate(solid, angle)
	mark = Rotate(mark, angle)
	offset = image.Pt(
		randRange(img.Width/6, img.Width*5/6-mark.Width),
		randRange(img.Height/6, img.Height*5/6-mark.Height),
	)
	return
}

func (w *WatermarkOption) fixedWatermark(img *RGB) (*RGB, image.Point) {
	return w.Mark, image.Pt(
		img.Width/2-w.Mark.Width/2+w.Offset.X,
		img.Height/2-w.Mark.Height/2+w.Offset.Y,
	)
}

// blend mixes mark into img at offset. Parts of mark outside img are dropped.
// A nil cover means the mark is fully opaque.
func blend(img, mark, cover *RGB, offset image.Point, opacity uint8) {
	for my := range mark.Height {
		y := offset.Y + my
		if y < 0 || y >= img.Height {
			continue
		}
		for mx := range mark.Width {
			x := offset.X + mx
			if x < 0 || x >= img.Width {
				continue
			}
			a := int(opacity)
			if cover != nil {
				a = a * int(cover.Pix[cover.Offset(mx, my)]) / 255
			}
			s := mark.Pix[mark.Offset(mx, my):][:3]
			d := img.Pix[img.Offset(x, y):][:3]
			for c := range 3 {
				d[c] = uint8((int(d[c])*(255-a) + int(s[c])*a + 127) / 255)
			}
		}
	}
}

func calcResizeXY(base, mark *RGB) bool {
	return base.Width*mark.Height/mark.Width < base.Height
}
