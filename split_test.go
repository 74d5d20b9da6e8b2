package imgfx

import (
	"image"
	"slices"
	"testing"
)

func TestSplitRects(t *testing.T) {
	for i, testcase := range []struct {
		base image.Rectangle
		n    int
		mode SplitMode
		want []image.Rectangle
	}{
		{image.Rect(0, 0, 100, 100), 4, SplitHorizontalMode, []image.Rectangle{
			image.Rect(0, 0, 25, 100),
			image.Rect(25, 0, 50, 100),
			image.Rect(50, 0, 75, 100),
			image.Rect(75, 0, 100, 100),
		}},
		{image.Rect(0, 0, 100, 100), 4, SplitVerticalMode, []image.Rectangle{
			image.Rect(0, 0, 100, 25),
			image.Rect(0, 25, 100, 50),
			image.Rect(0, 50, 100, 75),
			image.Rect(0, 75, 100, 100),
		}},
		{image.Rect(0, 0, 7, 3), 2, SplitHorizontalMode, []image.Rectangle{
			image.Rect(0, 0, 3, 3),
			image.Rect(3, 0, 6, 3),
		}},
	} {
		if rects := split(testcase.base, testcase.n, testcase.mode); !slices.Equal(rects, testcase.want) {
			t.Errorf("#%d wrong split results: want %v, got %v", i, testcase.want, rects)
		}
	}
}

func TestSplit(t *testing.T) {
	src := strip(6, 4)

	parts, err := SplitHorizontal(src, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts; got %d", len(parts))
	}
	for i, p := range parts {
		if p.Width != 2 || p.Height != 4 {
			t.Fatalf("#%d size %dx%d", i, p.Width, p.Height)
		}
		if r, g, _ := p.Pixel(1, 3); int(r) != 2*i+1 || g != 3 {
			t.Errorf("#%d (1,3) = (%d,%d)", i, r, g)
		}
	}

	parts, err = SplitVertical(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, _ := parts[1].Pixel(5, 0); r != 5 || g != 2 {
		t.Errorf("vertical (5,0) = (%d,%d)", r, g)
	}
}

func TestSplitError(t *testing.T) {
	img := newRGB(100, 100)
	if _, err := Split(img, 10, SplitHorizontalMode); err != nil {
		t.Fatal(err)
	}
	for i, n := range []int{0, -1, 101} {
		if _, err := Split(img, n, SplitHorizontalMode); err == nil {
			t.Errorf("#%d want error, got nil", i)
		}
	}
	if _, err := ParseSplitMode("diagonal"); err == nil {
		t.Error("unknown mode want error")
	}
	if mode, _ := ParseSplitMode("v"); mode != SplitVerticalMode {
		t.Error("v is vertical")
	}
}
