package core

import "fmt"

// DescriptorLen is the number of parameters in a Descriptor.
const DescriptorLen = 11

// Positions of the parameters inside a Descriptor.
const (
	IdxA1 = iota
	IdxY10
	IdxY11
	IdxA2
	IdxY21
	IdxY22
	IdxA3
	IdxY32
	IdxY33
	IdxZ1
	IdxZ2
)

// Descriptor parameterizes a three-segment piecewise-quadratic density law in
// normalized radius z = r/R:
//
//	x = [a1, y10, y11, a2, y21, y22, a3, y32, y33, z1, z2]
//
// a1, a2, a3 are the segment curvatures (upper envelope, lower envelope, core).
// The y terms are density differences that chain the breakpoint densities:
// d10 at z=1, d11/d21 as the right/left limits at z1, d22/d32 as the right/left
// limits at z2, and d33 at the center. z1 > z2 are the breakpoint radii.
// Densities are in real units (kg/m^3).
type Descriptor [DescriptorLen]float64

// DescriptorFromSlice copies x into a Descriptor. It fails unless x has exactly
// DescriptorLen elements.
func DescriptorFromSlice(x []float64) (Descriptor, error) {
	var d Descriptor
	if len(x) != DescriptorLen {
		return d, fmt.Errorf("%w: descriptor must have %d elements, got %d", ErrInvalidArgument, DescriptorLen, len(x))
	}
	copy(d[:], x)
	return d, nil
}

// Slice returns the parameters as a new slice.
func (x Descriptor) Slice() []float64 {
	out := make([]float64, DescriptorLen)
	copy(out, x[:])
	return out
}

// Curvatures returns a1, a2 and a3.
func (x Descriptor) Curvatures() (a1, a2, a3 float64) {
	return x[IdxA1], x[IdxA2], x[IdxA3]
}

// Breakpoints returns the upper (z1) and lower (z2) breakpoint radii.
func (x Descriptor) Breakpoints() (z1, z2 float64) {
	return x[IdxZ1], x[IdxZ2]
}

// BreakpointDensities reconstructs the absolute densities at the breakpoints by
// cumulative summation of the difference terms.
func (x Descriptor) BreakpointDensities() (d10, d11, d21, d22, d32, d33 float64) {
	d10 = x[IdxY10]
	d11 = d10 + x[IdxY11]
	d21 = d11 + x[IdxY21]
	d22 = d21 + x[IdxY22]
	d32 = d22 + x[IdxY32]
	d33 = d32 + x[IdxY33]
	return d10, d11, d21, d22, d32, d33
}
