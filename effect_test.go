package imgfx

import (
	"errors"
	"slices"
	"testing"
)

func TestParseEffect(t *testing.T) {
	for _, s := range []string{
		"argentique",
		"infrared",
		"infrared=90",
		"glow=2",
		"glow=2:128",
		"negative",
		"GrayScale",
		"saturation=-10",
		"hue=45",
		"value=5",
		"contrast=1.2",
		"blackpoint=30",
		"vignette=40",
		"grain=20",
		"swap=r:b",
		"channel=g:10",
		"ycrcb=cr:-5",
		"blur=5:1.5",
		"sobel",
		"sobel=hsv",
		"sharpen=0.5",
		"sharpen=0.5:ycrcb",
		"equalize",
		"equalize=gray",
		"stretch",
		"fliph",
		"flipv",
		"rotate=30",
		"glow=1e9",
	} {
		e, err := ParseEffect(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
			continue
		}
		if e.Name != s || e.String() != s {
			t.Errorf("%s: got name %q", s, e.Name)
		}
		if err := e.Apply(uniform(4, 3, 90, 120, 150)); err != nil {
			t.Errorf("%s: apply: %v", s, err)
		}
	}
}

func TestParseEffectError(t *testing.T) {
	for _, s := range []string{"", "sepia", "watermark=1"} {
		if _, err := ParseEffect(s); !errors.Is(err, ErrUnknownEffect) {
			t.Errorf("%q: expected ErrUnknownEffect; got %v", s, err)
		}
	}
	for _, s := range []string{
		"negative=1",
		"hue",
		"hue=abc",
		"contrast=1:2",
		"blackpoint=300",
		"swap=r",
		"swap=r:x",
		"channel=q:1",
		"blur=4:1",
		"blur=3:0",
		"sobel=cmyk",
		"sharpen=x",
		"glow=1:-1",
		"blur=100001:1",
		"rotate=inf",
		"rotate=-Inf",
		"rotate=NaN",
	} {
		if _, err := ParseEffect(s); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%q: expected ErrInvalidArgument; got %v", s, err)
		}
	}
}

func TestEffectApply(t *testing.T) {
	e, err := ParseEffect("negative")
	if err != nil {
		t.Fatal(err)
	}
	img := uniform(1, 1, 10, 200, 0)
	if err := e.Apply(img); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(img.Pix, []uint8{245, 55, 255}) {
		t.Errorf("expected [245 55 255]; got %v", img.Pix)
	}

	e, err = ParseEffect("rotate=90")
	if err != nil {
		t.Fatal(err)
	}
	img = strip(3, 2)
	if err := e.Apply(img); err != nil {
		t.Fatal(err)
	}
	compare(t, Rotate(strip(3, 2), 90), img)

	e, err = ParseEffect("swap=y:cb")
	if err != nil {
		t.Fatal(err)
	}
	img = uniform(1, 1, 1, 2, 3)
	e.Apply(img)
	if !slices.Equal(img.Pix, []uint8{3, 2, 1}) {
		t.Errorf("expected [3 2 1]; got %v", img.Pix)
	}
}

func TestEffectUsage(t *testing.T) {
	usage := EffectUsage()
	if len(usage) != len(registry) {
		t.Fatalf("expected %d entries; got %d", len(registry), len(usage))
	}
	if !slices.IsSorted(usage) {
		t.Error("usage not sorted")
	}
	if !slices.Contains(usage, "glow=radius[:threshold]") {
		t.Error("missing glow usage")
	}
}
