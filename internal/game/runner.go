// Package game runs one simulation session per connected AR client. The
// client's render loop is the clock: every frame message advances the
// simulation by the client-reported delta, and the resulting state is
// streamed straight back for rendering.
package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/vladkorolev/hoopshot/internal/sim"
	"github.com/vladkorolev/hoopshot/internal/ws"
)

// Runner owns one client's session. Its loop goroutine is the only
// writer of the session state, so the sim package needs no locks.
type Runner struct {
	conn *ws.Conn
	sess *sim.Session
	log  *zap.Logger

	tick uint32
	// xxhash of the last snapshot sent; identical snapshots (a paused
	// session, an idle scene) are not re-broadcast.
	lastState uint64

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner(conn *ws.Conn, tun sim.Tuning, log *zap.Logger) *Runner {
	return &Runner{
		conn: conn,
		sess: sim.NewSession(tun),
		log:  log.With(zap.String("conn", conn.ID)),
	}
}

func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	if msg, err := ws.NewMessage(ws.MsgSessionStart, 0, ws.SessionStartPayload{
		SessionID: r.conn.ID,
	}); err == nil {
		r.conn.Send(msg)
	}

	go func() {
		r.loop(ctx)
		close(r.done)
	}()
}

// Done returns a channel that closes when the session loop exits.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) loop(ctx context.Context) {
	// Session end clears all game state unconditionally.
	defer r.sess.Reset()

	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				r.log.Info("client disconnected",
					zap.Int("makes", r.sess.Makes()),
					zap.Int("attempts", r.sess.Attempts()))
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgFrame:
		var frame ws.FramePayload
		if err := json.Unmarshal(msg.Payload, &frame); err != nil {
			return
		}
		r.handleFrame(frame)

	case ws.MsgPointer:
		var p ws.PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		switch p.Phase {
		case ws.PointerDown:
			r.sess.PointerDown(p.X, p.Y, p.Millis)
		case ws.PointerMove:
			r.sess.PointerMove(p.X, p.Y, p.Millis)
		case ws.PointerUp:
			if r.sess.PointerUp(p.X, p.Y, p.Millis) {
				r.log.Debug("ball thrown", zap.Int("attempts", r.sess.Attempts()))
			}
		}

	case ws.MsgPlace:
		if r.sess.Place() {
			anchor := r.sess.Snapshot().Anchor
			r.log.Info("hoop placed",
				zap.Float64("x", anchor.Position.X),
				zap.Float64("y", anchor.Position.Y),
				zap.Float64("z", anchor.Position.Z))
			r.broadcastState()
		}

	case ws.MsgAction:
		var a ws.ActionPayload
		if err := json.Unmarshal(msg.Payload, &a); err != nil {
			return
		}
		r.handleAction(a)

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := json.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		if pong, err := ws.NewMessage(ws.MsgPong, r.tick, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		}); err == nil {
			r.conn.Send(pong)
		}
	}
}

func (r *Runner) handleFrame(frame ws.FramePayload) {
	in := sim.FrameInput{
		DT: frame.DT,
		Camera: sim.Pose{
			Position: vec3(frame.Camera.Position),
			Forward:  vec3(frame.Camera.Forward),
			Up:       vec3(frame.Camera.Up),
		},
	}
	if frame.Surface != nil {
		in.Surface = &sim.SurfacePose{Position: vec3(*frame.Surface)}
	}

	r.tick++
	events := r.sess.Advance(in)
	for _, ev := range events {
		r.log.Info("score",
			zap.Uint64("ball", ev.ProjectileID),
			zap.Int("makes", ev.Makes))
		if msg, err := ws.NewMessage(ws.MsgScored, r.tick, ws.ScoredPayload{
			BallID: ev.ProjectileID,
			Makes:  ev.Makes,
			Hit:    [3]float64{ev.Hit.X, ev.Hit.Y, ev.Hit.Z},
		}); err == nil {
			r.conn.Send(msg)
		}
	}
	r.broadcastState()
}

func (r *Runner) handleAction(a ws.ActionPayload) {
	switch a.Name {
	case ws.ActionReset:
		r.sess.Reset()
		r.log.Info("session reset")
	case ws.ActionPause:
		r.sess.Pause()
	case ws.ActionResume:
		r.sess.Resume()
	case ws.ActionNudge:
		r.sess.NudgeHeight(a.DY)
	default:
		r.log.Warn("unknown action", zap.String("name", a.Name))
		return
	}
	r.broadcastState()
}

// broadcastState ships the current snapshot unless it is byte-identical
// to the previous one.
func (r *Runner) broadcastState() {
	msg, err := ws.NewMessage(ws.MsgState, r.tick, r.sess.Snapshot())
	if err != nil {
		r.log.Error("encode state failed", zap.Error(err))
		return
	}
	sum := xxhash.Sum64(msg.Payload)
	if sum == r.lastState {
		return
	}
	r.lastState = sum
	r.conn.Send(msg)
}

func vec3(a [3]float64) sim.Vec3 {
	return sim.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
