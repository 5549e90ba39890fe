package sim

import "math"

// Vec3 is a 3D point/vector in meters (X = east, Y = up, Z = north).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len2() float64        { return a.Dot(a) }
func (a Vec3) Len() float64         { return math.Sqrt(a.Len2()) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns a unit vector, or the zero vector if the length is
// too small to divide by.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return a.Scale(1.0 / l)
}

// Flat drops the vertical component, keeping only the horizontal part.
func (a Vec3) Flat() Vec3 { return Vec3{a.X, 0, a.Z} }

// Pose is a camera pose: a world position plus forward and up axes.
// The right axis is derived, so callers only supply two vectors.
type Pose struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
}

func (p Pose) Right() Vec3 { return p.Forward.Cross(p.Up) }

// Transform is the hoop anchor: a world position plus a yaw angle.
// The hoop only ever rotates about the vertical axis.
type Transform struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// Forward returns the horizontal unit vector the transform faces.
func (t Transform) Forward() Vec3 {
	return Vec3{math.Sin(t.Yaw), 0, math.Cos(t.Yaw)}
}

// yawTowards returns the yaw that makes a transform at from face to,
// considering only the horizontal plane.
func yawTowards(from, to Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(d.X, d.Z)
}
