package sim

// SurfacePose is a detected real-world horizontal surface: a point on the
// plane. Orientation is implied, the surface is horizontal.
type SurfacePose struct {
	Position Vec3
}

// ResolveAnchor computes the hoop anchor for a placement request. With a
// detected surface the rim sits RimHeight above it; without one the hoop
// hangs FallbackDistance out along the camera's horizontal forward, rim
// slightly below eye level. Either way the hoop yaws to face the camera.
// Always succeeds.
func ResolveAnchor(t Tuning, surface *SurfacePose, camera Pose) Transform {
	var pos Vec3
	if surface != nil {
		pos = surface.Position
		pos.Y += t.RimHeight
	} else {
		fwd := camera.Forward.Flat().Normalize()
		if fwd.Len2() == 0 {
			// Camera looking straight down; arbitrary horizontal.
			fwd = Vec3{0, 0, 1}
		}
		pos = camera.Position.Add(fwd.Scale(t.FallbackDistance))
		pos.Y = camera.Position.Y - t.RimHeight*(1-t.FallbackRimFrac)
	}
	return Transform{
		Position: pos,
		Yaw:      yawTowards(pos, camera.Position),
	}
}
