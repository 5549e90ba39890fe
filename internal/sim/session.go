// Package sim implements the AR hoops game simulation: hoop placement,
// swipe-to-throw mapping, ball flight, and ring-crossing score detection.
// It is pure and deterministic: no I/O, no clocks, no goroutines. Time
// only moves when Advance is called, which makes the whole game testable
// with synthetic frame deltas.
package sim

// FrameInput is what the client reports for one rendered frame.
type FrameInput struct {
	// Seconds since the client's previous frame.
	DT     float64
	Camera Pose
	// Most recent surface detection, nil while still searching.
	Surface *SurfacePose
}

// ScoreEvent records one made shot.
type ScoreEvent struct {
	ProjectileID uint64
	Makes        int
	Hit          Vec3
}

// BallView is the render-facing view of one active ball.
type BallView struct {
	ID  uint64 `json:"id"`
	Pos Vec3   `json:"pos"`
}

// Snapshot is the full render-facing state of a session.
type Snapshot struct {
	Placed    bool       `json:"placed"`
	Searching bool       `json:"searching"`
	Anchor    Transform  `json:"anchor"`
	Balls     []BallView `json:"balls"`
	Makes     int        `json:"makes"`
	Attempts  int        `json:"attempts"`
	Paused    bool       `json:"paused"`
	Flash     float64    `json:"flash"`
}

// Session owns every piece of mutable game state for one client: the
// active ball set, the hoop anchor, the score counters, the pause flag,
// and the in-progress swipe. All methods must be called from a single
// goroutine; the session runner is the sole writer.
type Session struct {
	tun Tuning

	camera  Pose
	surface *SurfacePose

	placed bool
	anchor Transform

	balls  []Projectile
	nextID uint64

	makes    int
	attempts int

	paused bool
	flash  float64
	swipe  *gesture
}

func NewSession(t Tuning) *Session {
	return &Session{tun: t}
}

// Advance runs one simulation frame: integrate every ball, detect ring
// crossings, cull expired balls in a second pass, decay the score flash.
// The camera and surface poses are remembered even while paused so that
// placement always uses fresh data, but a paused frame advances nothing
// else. Returns the score events produced this frame.
func (s *Session) Advance(in FrameInput) []ScoreEvent {
	s.camera = in.Camera
	s.surface = in.Surface

	if s.paused {
		return nil
	}
	dt := in.DT
	if dt > s.tun.MaxFrameDelta {
		dt = s.tun.MaxFrameDelta
	}
	if dt <= 0 {
		return nil
	}

	// Decay the flash left over from earlier frames before this frame's
	// scoring can re-arm it.
	if s.flash > 0 {
		s.flash -= dt
		if s.flash < 0 {
			s.flash = 0
		}
	}

	g := s.tun.gravityVec()
	for i := range s.balls {
		s.balls[i].Step(g, dt)
	}

	var events []ScoreEvent
	if s.placed {
		plane := ringPlane(s.anchor)
		for i := range s.balls {
			b := &s.balls[i]
			if hit, ok := checkScore(s.tun, plane, b); ok {
				s.makes++
				s.flash = s.tun.FlashDuration
				events = append(events, ScoreEvent{
					ProjectileID: b.ID,
					Makes:        s.makes,
					Hit:          hit,
				})
			}
		}
	}

	// Cull after scoring so a ball can still score on its final step.
	// Second pass keeps the iteration above free of index juggling.
	alive := s.balls[:0]
	for _, b := range s.balls {
		if !b.Expired(s.tun.BallLifetime) {
			alive = append(alive, b)
		}
	}
	s.balls = alive
	return events
}

// PointerDown starts a swipe at a screen coordinate and timestamp (ms).
func (s *Session) PointerDown(x, y, millis float64) {
	s.swipe = &gesture{
		startX: x, startY: y, startMillis: millis,
		lastX: x, lastY: y, lastMillis: millis,
	}
}

// PointerMove extends the active swipe, if any.
func (s *Session) PointerMove(x, y, millis float64) {
	if s.swipe == nil {
		return
	}
	s.swipe.lastX, s.swipe.lastY, s.swipe.lastMillis = x, y, millis
}

// PointerUp completes the active swipe. A qualifying swipe spawns a ball
// and counts an attempt; a sub-threshold swipe is a complete no-op, and
// throws are refused entirely until the hoop has been placed. Reports
// whether a ball was thrown.
func (s *Session) PointerUp(x, y, millis float64) bool {
	sw := s.swipe
	s.swipe = nil
	if sw == nil || !s.placed || s.paused {
		return false
	}
	sw.lastX, sw.lastY, sw.lastMillis = x, y, millis

	spawn, vel, ok := throwVelocity(s.tun, *sw, s.camera)
	if !ok {
		return false
	}

	s.attempts++
	s.nextID++
	s.balls = append(s.balls, Projectile{
		ID:   s.nextID,
		Pos:  spawn,
		Prev: spawn,
		Vel:  vel,
	})
	return true
}

// Place anchors the hoop using the latest frame's surface detection and
// camera pose. Only the first call per session takes effect; after Reset
// a new placement is accepted again. Reports whether placement happened.
func (s *Session) Place() bool {
	if s.placed {
		return false
	}
	s.anchor = ResolveAnchor(s.tun, s.surface, s.camera)
	s.placed = true
	return true
}

// NudgeHeight moves the placed hoop vertically by dy meters.
func (s *Session) NudgeHeight(dy float64) {
	if !s.placed {
		return
	}
	s.anchor.Position.Y += dy
}

// Pause freezes simulated time from the next frame on.
func (s *Session) Pause() { s.paused = true }

// Resume lets simulated time flow again from the next frame on.
func (s *Session) Resume() { s.paused = false }

// Reset returns the session to its initial state: counters zeroed, balls
// cleared, hoop unplaced, swipe and flash dropped, pause lifted. Further
// throws are refused until a new placement.
func (s *Session) Reset() {
	s.placed = false
	s.anchor = Transform{}
	s.balls = nil
	s.makes = 0
	s.attempts = 0
	s.paused = false
	s.flash = 0
	s.swipe = nil
}

// Snapshot returns the render-facing state for the current frame.
func (s *Session) Snapshot() Snapshot {
	balls := make([]BallView, len(s.balls))
	for i, b := range s.balls {
		balls[i] = BallView{ID: b.ID, Pos: b.Pos}
	}
	return Snapshot{
		Placed:    s.placed,
		Searching: !s.placed && s.surface == nil,
		Anchor:    s.anchor,
		Balls:     balls,
		Makes:     s.makes,
		Attempts:  s.attempts,
		Paused:    s.paused,
		Flash:     s.flash,
	}
}

// Makes returns the made-shot counter.
func (s *Session) Makes() int { return s.makes }

// Attempts returns the attempted-shot counter.
func (s *Session) Attempts() int { return s.attempts }
