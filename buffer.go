package imgfx

// alignment is the boundary the capacity of every pixel slice is rounded up to.
const alignment = 64

// MaxBufferSize is the largest pixel storage, in bytes, a single buffer may request.
const MaxBufferSize = 1 << 30

// Channel indexes a component of an interleaved 3-channel buffer.
type Channel int

// RGB channels.
const (
	Red Channel = iota
	Green
	Blue
)

// HSV channels.
const (
	Hue Channel = iota
	Saturation
	Value
)

// Luma/chroma channels of a buffer produced by RGBToYCrCb.
const (
	Luma Channel = iota
	ChromaRed
	ChromaBlue
)

func (c Channel) valid() bool { return c >= 0 && c < 3 }

func alloc[T uint8 | uint16](width, height, channels, size int) ([]T, error) {
	if width <= 0 || height <= 0 {
		return nil, &AllocationError{width, height, channels}
	}
	n := width * height
	if n/width != height {
		return nil, &AllocationError{width, height, channels}
	}
	n *= channels
	if n/channels != width*height || n > MaxBufferSize/size {
		return nil, &AllocationError{width, height, channels}
	}
	return make([]T, n, (n+alignment-1)&^(alignment-1)), nil
}

// Gray is an 8-bit grayscale image buffer.
type Gray struct {
	// Pix holds Width*Height levels, row by row.
	Pix    []uint8
	Width  int
	Height int
}

// NewGray allocates a gray buffer of the given size.
func NewGray(width, height int) (*Gray, error) {
	pix, err := alloc[uint8](width, height, 1, 1)
	if err != nil {
		return nil, err
	}
	return &Gray{pix, width, height}, nil
}

// newGray allocates a buffer whose dimensions come from an existing buffer.
func newGray(width, height int) *Gray {
	g, err := NewGray(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

// Offset returns the index of the pixel at (x, y).
func (g *Gray) Offset(x, y int) int { return y*g.Width + x }

// Get returns the level at index i.
func (g *Gray) Get(i int) uint8 { return g.Pix[i] }

// Set stores level v at index i.
func (g *Gray) Set(i int, v uint8) { g.Pix[i] = v }

// Clone returns a deep copy of g.
func (g *Gray) Clone() *Gray {
	c := newGray(g.Width, g.Height)
	copy(c.Pix, g.Pix)
	return c
}

func (g *Gray) sameSize(o *Gray) bool { return g.Width == o.Width && g.Height == o.Height }

// RGB is a 3-channel 8-bit image buffer with R, G and B interleaved per pixel.
type RGB struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewRGB allocates an RGB buffer of the given size.
func NewRGB(width, height int) (*RGB, error) {
	pix, err := alloc[uint8](width, height, 3, 1)
	if err != nil {
		return nil, err
	}
	return &RGB{pix, width, height}, nil
}

func newRGB(width, height int) *RGB {
	img, err := NewRGB(width, height)
	if err != nil {
		panic(err)
	}
	return img
}

// Offset returns the index of the first channel of the pixel at (x, y).
func (p *RGB) Offset(x, y int) int { return (y*p.Width + x) * 3 }

// Get returns the channel value at index i.
func (p *RGB) Get(i int) uint8 { return p.Pix[i] }

// Set stores v at index i.
func (p *RGB) Set(i int, v uint8) { p.Pix[i] = v }

// Pixel returns the three channels of the pixel at (x, y).
func (p *RGB) Pixel(x, y int) (r, g, b uint8) {
	i := p.Offset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return s[0], s[1], s[2]
}

// SetPixel sets the three channels of the pixel at (x, y).
func (p *RGB) SetPixel(x, y int, r, g, b uint8) {
	i := p.Offset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = r, g, b
}

// Clone returns a deep copy of p.
func (p *RGB) Clone() *RGB {
	c := newRGB(p.Width, p.Height)
	copy(c.Pix, p.Pix)
	return c
}

// replace takes over the storage and dimensions of src.
func (p *RGB) replace(src *RGB) {
	p.Pix, p.Width, p.Height = src.Pix, src.Width, src.Height
}

// HSV is a 3-channel buffer with hue in [0, 360), saturation and value in [0, 100].
// Channels are stored on 16 bits so hue keeps its full range.
type HSV struct {
	Pix    []uint16
	Width  int
	Height int
}

// NewHSV allocates an HSV buffer of the given size.
func NewHSV(width, height int) (*HSV, error) {
	pix, err := alloc[uint16](width, height, 3, 2)
	if err != nil {
		return nil, err
	}
	return &HSV{pix, width, height}, nil
}

func newHSV(width, height int) *HSV {
	img, err := NewHSV(width, height)
	if err != nil {
		panic(err)
	}
	return img
}

// Offset returns the index of the hue of the pixel at (x, y).
func (p *HSV) Offset(x, y int) int { return (y*p.Width + x) * 3 }

// Get returns the channel value at index i.
func (p *HSV) Get(i int) uint16 { return p.Pix[i] }

// Set stores v at index i.
func (p *HSV) Set(i int, v uint16) { p.Pix[i] = v }

// Clone returns a deep copy of p.
func (p *HSV) Clone() *HSV {
	c := newHSV(p.Width, p.Height)
	copy(c.Pix, p.Pix)
	return c
}

// Plane returns channel c of p as a gray buffer.
func (p *RGB) Plane(c Channel) (*Gray, error) {
	if !c.valid() {
		return nil, channelError(c)
	}
	g := newGray(p.Width, p.Height)
	for i, j := int(c), 0; j < len(g.Pix); i, j = i+3, j+1 {
		g.Pix[j] = p.Pix[i]
	}
	return g, nil
}

// SetPlane replaces channel c of p with g.
func (p *RGB) SetPlane(c Channel, g *Gray) error {
	if !c.valid() {
		return channelError(c)
	}
	if g.Width != p.Width || g.Height != p.Height {
		return ErrSizeMismatch
	}
	for i, j := int(c), 0; j < len(g.Pix); i, j = i+3, j+1 {
		p.Pix[i] = g.Pix[j]
	}
	return nil
}
