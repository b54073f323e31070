package geometry3D

import (
	"math"
)

// Vec is a point or vector in ambient 3D space.
type Vec struct {
	X, Y, Z float64
}

func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vec) Scale(a float64) Vec { return Vec{a * v.X, a * v.Y, a * v.Z} }

func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n < 1.e-14 {
		panic("normalizing near-zero vector")
	}
	return v.Scale(1. / n)
}

func (v Vec) Component(k int) float64 {
	switch k {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Axis returns the k'th canonical basis vector of ambient space.
func Axis(k int) (e Vec) {
	switch k {
	case 0:
		e.X = 1
	case 1:
		e.Y = 1
	default:
		e.Z = 1
	}
	return
}
