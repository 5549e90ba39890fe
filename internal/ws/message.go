package ws

import "encoding/json"

// Client -> Server message types
const (
	MsgFrame   uint8 = 0x01
	MsgPointer uint8 = 0x02
	MsgPlace   uint8 = 0x03
	MsgAction  uint8 = 0x04
	MsgPing    uint8 = 0x05
)

// Server -> Client message types
const (
	MsgState        uint8 = 0x81
	MsgSessionStart uint8 = 0x82
	MsgScored       uint8 = 0x84
	MsgPong         uint8 = 0x86
)

type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint32          `json:"tick"`
	Payload json.RawMessage `json:"payload"`
}

// FramePayload is sent by the client once per rendered frame: the elapsed
// delta in seconds, the camera pose, and the detected-surface point if
// the AR layer found one this frame.
type FramePayload struct {
	DT      float64     `json:"dt"`
	Camera  PosePayload `json:"camera"`
	Surface *[3]float64 `json:"surface,omitempty"`
}

// PosePayload carries a camera pose as plain arrays; the game layer
// converts it into its own vector types.
type PosePayload struct {
	Position [3]float64 `json:"position"`
	Forward  [3]float64 `json:"forward"`
	Up       [3]float64 `json:"up"`
}

// Pointer phases
const (
	PointerDown uint8 = 0
	PointerMove uint8 = 1
	PointerUp   uint8 = 2
)

type PointerPayload struct {
	Phase  uint8   `json:"phase"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Millis float64 `json:"t"`
}

// Action names accepted in ActionPayload.
const (
	ActionReset  = "reset"
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionNudge  = "nudge"
)

type ActionPayload struct {
	Name string `json:"name"`
	// Vertical offset in meters, only meaningful for nudge.
	DY float64 `json:"dy,omitempty"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

type SessionStartPayload struct {
	SessionID string `json:"sessionId"`
}

type ScoredPayload struct {
	BallID uint64     `json:"ballId"`
	Makes  int        `json:"makes"`
	Hit    [3]float64 `json:"hit"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}

func NewMessage(typ uint8, tick uint32, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}
