package imgfx

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when buffers that must share dimensions do not.
	ErrSizeMismatch = errors.New("buffers have different dimensions")
	// ErrUnknownEffect is returned by ParseEffect for an unregistered effect name.
	ErrUnknownEffect = errors.New("unknown effect")
	// ErrInvalidArgument is returned by ParseEffect when an effect argument cannot be parsed.
	ErrInvalidArgument = errors.New("invalid effect argument")
)

// AllocationError reports a buffer that could not be allocated.
type AllocationError struct {
	Width, Height int
	Channels      int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate %dx%d buffer with %d channel(s)", e.Width, e.Height, e.Channels)
}

// InvalidKernelError reports a kernel that is empty, not square or of even size.
type InvalidKernelError struct {
	Rows, Cols int
}

func (e *InvalidKernelError) Error() string {
	return fmt.Sprintf("invalid kernel %dx%d: must be square with odd size", e.Rows, e.Cols)
}

// DomainRangeError reports a value that lies outside the domain of its channel or parameter.
type DomainRangeError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *DomainRangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.Name, e.Value, e.Min, e.Max)
}
