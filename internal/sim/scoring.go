package sim

// RingPlane is the mathematical plane through the hoop's rim: a center
// point and a unit normal. The normal is the hoop's facing direction, so
// "front" is the side the player shoots from.
type RingPlane struct {
	Center Vec3
	Normal Vec3
}

// SignedDistance is positive in front of the plane, negative behind it.
func (r RingPlane) SignedDistance(p Vec3) float64 {
	return p.Sub(r.Center).Dot(r.Normal)
}

// ringPlane derives the current ring plane from an anchor transform.
func ringPlane(anchor Transform) RingPlane {
	return RingPlane{
		Center: anchor.Position,
		Normal: anchor.Forward(),
	}
}

// checkScore tests one integration step of a projectile against the ring.
// A score needs a strict front-to-back crossing (previous distance > 0,
// current <= 0) whose interpolated hit point lies within the scoring
// radius of the ring center. Back-to-front crossings never count, so a
// rebound cannot double-count. Returns the hit point and whether the
// projectile scored this step.
func checkScore(t Tuning, plane RingPlane, p *Projectile) (Vec3, bool) {
	if p.Scored {
		return Vec3{}, false
	}

	d0 := plane.SignedDistance(p.Prev)
	d1 := plane.SignedDistance(p.Pos)
	if !(d0 > 0 && d1 <= 0) {
		return Vec3{}, false
	}

	// Exact crossing point between the two samples. d0 > 0 >= d1, so the
	// denominator is strictly positive.
	frac := d0 / (d0 - d1)
	hit := p.Prev.Add(p.Pos.Sub(p.Prev).Scale(frac))

	// Radial offset from the ring center, projected onto the plane.
	off := hit.Sub(plane.Center)
	off = off.Sub(plane.Normal.Scale(off.Dot(plane.Normal)))
	if off.Len() > t.scoreRadius() {
		return Vec3{}, false
	}

	p.Scored = true
	return hit, true
}
