package sim

// Tuning holds every gameplay constant in one place so the config file
// can override individual values. All lengths are meters, times seconds,
// speeds m/s unless the field name says otherwise.
type Tuning struct {
	// Gravity magnitude, applied straight down.
	Gravity float64 `yaml:"gravity"`

	BallRadius      float64 `yaml:"ball_radius"`
	RingInnerRadius float64 `yaml:"ring_inner_radius"`
	// Fraction of the ball radius forgiven on the radial scoring test.
	ScoreMarginFrac float64 `yaml:"score_margin_frac"`

	// Rim height above a detected surface.
	RimHeight float64 `yaml:"rim_height"`
	// Fallback placement when no surface was detected: this far along the
	// camera's horizontal forward, rim at this fraction of RimHeight
	// relative to eye level.
	FallbackDistance float64 `yaml:"fallback_distance"`
	FallbackRimFrac  float64 `yaml:"fallback_rim_frac"`

	// Seconds a ball lives before it is culled.
	BallLifetime float64 `yaml:"ball_lifetime"`

	// Swipes shorter than this many screen pixels are ignored.
	MinSwipePx float64 `yaml:"min_swipe_px"`
	// Screen-velocity (px/s) to world-velocity gains.
	LateralGain  float64 `yaml:"lateral_gain"`
	VerticalGain float64 `yaml:"vertical_gain"`
	// Forward speed = base + ForwardGain * |vertical px/s|.
	BaseForwardSpeed float64 `yaml:"base_forward_speed"`
	ForwardGain      float64 `yaml:"forward_gain"`
	MaxThrowSpeed    float64 `yaml:"max_throw_speed"`

	// Ball spawn offset from the camera: forward along the view axis and
	// dropped below it so the ball never clips the near plane.
	SpawnForward float64 `yaml:"spawn_forward"`
	SpawnDrop    float64 `yaml:"spawn_drop"`

	// Seconds the score flash stays lit.
	FlashDuration float64 `yaml:"flash_duration"`

	// Largest frame delta accepted from a client. A tab that was
	// backgrounded for a minute must not integrate a minute in one step.
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
}

// DefaultTuning returns the values the game ships with.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:          9.82,
		BallRadius:       0.08,
		RingInnerRadius:  0.19,
		ScoreMarginFrac:  0.5,
		RimHeight:        1.2,
		FallbackDistance: 2.0,
		FallbackRimFrac:  0.75,
		BallLifetime:     5.0,
		MinSwipePx:       10,
		LateralGain:      0.001,
		VerticalGain:     0.001,
		BaseForwardSpeed: 3.0,
		ForwardGain:      0.0015,
		MaxThrowSpeed:    9.0,
		SpawnForward:     0.3,
		SpawnDrop:        0.2,
		FlashDuration:    0.12,
		MaxFrameDelta:    0.25,
	}
}

// gravityVec is the gravity acceleration as a vector.
func (t Tuning) gravityVec() Vec3 { return Vec3{0, -t.Gravity, 0} }

// scoreRadius is the radial distance a crossing must fall within to count.
func (t Tuning) scoreRadius() float64 {
	return t.RingInnerRadius - t.ScoreMarginFrac*t.BallRadius
}
