package core

import "fmt"

// Vec3 is a cell address or direction on the signed integer grid.
type Vec3 struct {
	X, Y, Z int
}

// Axis-aligned unit directions. Up is +Y; Forward points away from the
// camera (-Z) so that screen-up input maps to Forward.
var (
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Left    = Vec3{-1, 0, 0}
	Right   = Vec3{1, 0, 0}
	Forward = Vec3{0, 0, -1}
	Back    = Vec3{0, 0, 1}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Neg returns the opposite direction.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v multiplied component-wise by n.
func (v Vec3) Scale(n int) Vec3 {
	return Vec3{v.X * n, v.Y * n, v.Z * n}
}

// Chebyshev returns the maximum absolute component difference between v
// and o, the number of king moves between the two cells.
func (v Vec3) Chebyshev(o Vec3) int {
	d := v.Sub(o)
	return max(abs(d.X), abs(d.Y), abs(d.Z))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
