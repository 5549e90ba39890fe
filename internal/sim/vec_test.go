package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-1, 0, 2}

	assert.Equal(t, Vec3{0, 2, 5}, a.Add(b))
	assert.Equal(t, Vec3{2, 2, 1}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 5, a.Dot(b), 1e-12)
	assert.InDelta(t, math.Sqrt(14), a.Len(), 1e-12)
}

func TestCrossIsOrthogonal(t *testing.T) {
	a := Vec3{0.3, -1.2, 2}
	b := Vec3{1.5, 0.4, -0.7}
	c := a.Cross(b)
	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
}

func TestNormalizeZeroVector(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, Vec3{0, 0, 5}.Normalize().Len(), 1e-12)
}

func TestTransformForwardMatchesYawTowards(t *testing.T) {
	from := Vec3{1, 1.2, -3}
	to := Vec3{-2, 1.6, 4}

	tr := Transform{Position: from, Yaw: yawTowards(from, to)}
	want := to.Sub(from).Flat().Normalize()
	fwd := tr.Forward()

	assert.InDelta(t, want.X, fwd.X, 1e-12)
	assert.InDelta(t, want.Z, fwd.Z, 1e-12)
	assert.Zero(t, fwd.Y)
}

func TestPoseRight(t *testing.T) {
	p := Pose{Forward: Vec3{0, 0, -1}, Up: Vec3{0, 1, 0}}
	assert.Equal(t, Vec3{1, 0, 0}, p.Right())
}
