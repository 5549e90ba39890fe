package sim

import "math"

// gesture is an in-progress swipe, alive between pointer down and up.
// Coordinates are screen pixels, timestamps milliseconds.
type gesture struct {
	startX, startY float64
	startMillis    float64
	lastX, lastY   float64
	lastMillis     float64
}

// throwVelocity maps a completed swipe to a spawn position and initial
// ball velocity in world space. Swipes shorter than the pixel threshold
// report ok=false and must leave the session untouched.
func throwVelocity(t Tuning, g gesture, camera Pose) (spawn, vel Vec3, ok bool) {
	dx := g.lastX - g.startX
	dy := g.lastY - g.startY
	if math.Hypot(dx, dy) < t.MinSwipePx {
		return Vec3{}, Vec3{}, false
	}

	// Clamp elapsed time to 1ms so an instantaneous event pair cannot
	// divide by zero.
	elapsed := g.lastMillis - g.startMillis
	if elapsed < 1 {
		elapsed = 1
	}
	secs := elapsed / 1000

	// Screen velocities in px/s. Screen Y grows downward, so flip it:
	// an upward drag is a positive vertical speed.
	sx := dx / secs
	sy := -dy / secs

	right := camera.Right().Normalize()
	up := camera.Up.Normalize()
	fwd := camera.Forward.Normalize()

	// Steeper and faster upward swipes throw harder.
	forwardSpeed := t.BaseForwardSpeed + t.ForwardGain*math.Abs(sy)

	vel = right.Scale(sx * t.LateralGain).
		Add(up.Scale(sy * t.VerticalGain)).
		Add(fwd.Scale(forwardSpeed))

	// Cap total speed; a glitched timestamp must not launch the ball
	// into orbit.
	if speed := vel.Len(); speed > t.MaxThrowSpeed {
		vel = vel.Scale(t.MaxThrowSpeed / speed)
	}

	spawn = camera.Position.
		Add(fwd.Scale(t.SpawnForward)).
		Add(Vec3{0, -t.SpawnDrop, 0})
	return spawn, vel, true
}
