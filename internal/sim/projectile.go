package sim

// Projectile is one thrown ball. It is a plain value stored in the
// session's active set; mapping an ID to a renderable node is the
// client's problem.
type Projectile struct {
	ID  uint64
	Pos Vec3
	Vel Vec3
	// Position at the start of the current step, for crossing detection.
	// Initialized to the spawn position so the first step can never
	// register a crossing from stale data.
	Prev   Vec3
	Age    float64
	Scored bool
}

// Step advances the projectile by dt using semi-implicit Euler: velocity
// picks up gravity first, then position moves with the updated velocity.
func (p *Projectile) Step(gravity Vec3, dt float64) {
	p.Prev = p.Pos
	p.Vel = p.Vel.Add(gravity.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Age += dt
}

// Expired reports whether the projectile has outlived its allotted time.
func (p *Projectile) Expired(lifetime float64) bool {
	return p.Age > lifetime
}
