package imgfx

import (
	"image"
	"testing"
)

func compare(t *testing.T, img0, img1 *RGB) {
	t.Helper()
	if img0.Width != img1.Width || img0.Height != img1.Height {
		t.Fatalf("wrong image size: want %dx%d, got %dx%d", img0.Width, img0.Height, img1.Width, img1.Height)
	}
	for y := 0; y < img0.Height; y++ {
		for x := 0; x < img0.Width; x++ {
			r0, g0, b0 := img0.Pixel(x, y)
			r1, g1, b1 := img1.Pixel(x, y)
			if r0 != r1 || g0 != g1 || b0 != b1 {
				t.Fatalf("pixel at (%d, %d) has wrong color: want (%d, %d, %d), got (%d, %d, %d)", x, y, r0, g0, b0, r1, g1, b1)
			}
		}
	}
}

// sample returns a 150×103 gradient.
func sample() *RGB {
	img := newRGB(150, 103)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.SetPixel(x, y, uint8(x), uint8(y*2), uint8(x+y))
		}
	}
	return img
}

func TestResize(t *testing.T) {
	testCase := []struct {
		option *ResizeOption
		want   image.Point
	}{
		{&ResizeOption{Width: 300}, image.Pt(300, 206)},
		{&ResizeOption{Height: 206}, image.Pt(300, 206)},
		{&ResizeOption{Width: 200, Height: 200}, image.Pt(200, 200)},
		{&ResizeOption{Percent: 50}, image.Pt(75, 52)},
	}

	src := sample()
	for _, tc := range testCase {
		img, err := Resize(src, tc.option)
		if err != nil {
			t.Fatal(err)
		}
		if size := image.Pt(img.Width, img.Height); size != tc.want {
			t.Fatalf("bounds differ: %v and %v", size, tc.want)
		}
	}

	if _, err := Resize(src, &ResizeOption{Percent: 0.1}); err == nil {
		t.Error("resize to nothing want error")
	}
}

func TestResizeUniform(t *testing.T) {
	img, err := Resize(uniform(8, 8, 30, 60, 90), &ResizeOption{Width: 4})
	if err != nil {
		t.Fatal(err)
	}
	compare(t, uniform(4, 4, 30, 60, 90), img)
}
