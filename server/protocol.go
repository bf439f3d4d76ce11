package main

import (
	"encoding/json"
	"math"
)

// Client -> Server message types
const (
	MsgStart   = "start"   // begin a run
	MsgLeave   = "leave"   // abandon the run
	MsgInput   = "input"   // movement vector + fire
	MsgPause   = "pause"   // toggle pause
	MsgControl = "control" // phone controller attach with a pairing token
	MsgRuns    = "runs"    // list live runs
)

// Server -> Client message types
const (
	MsgState     = "state" // binary msgpack FrameState
	MsgStarted   = "started"
	MsgLevel     = "level" // level transition
	MsgResult    = "result"
	MsgPaused    = "paused"
	MsgRunList   = "run_list"
	MsgError     = "error"
	MsgControlOK = "control_ok" // controller attach confirmed
	MsgCtrlOn    = "ctrl_on"    // notify viewer: controller attached
	MsgCtrlOff   = "ctrl_off"   // notify viewer: controller detached
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is the per-frame input. MX/MY is a movement vector in
// [-1, 1]; longer vectors are normalized.
type ClientInput struct {
	MX   float64 `json:"mx"`
	MY   float64 `json:"my"`
	Fire bool    `json:"fire"`
}

// Binary input flags: [0x01, flags]
const (
	InputLeft  = 0x01
	InputRight = 0x02
	InputUp    = 0x04
	InputDown  = 0x08
	InputFire  = 0x10
)

// DecodeInputFlags turns directional flags into a movement vector
func DecodeInputFlags(flags byte) ClientInput {
	var in ClientInput
	if flags&InputLeft != 0 {
		in.MX--
	}
	if flags&InputRight != 0 {
		in.MX++
	}
	if flags&InputUp != 0 {
		in.MY--
	}
	if flags&InputDown != 0 {
		in.MY++
	}
	in.Fire = flags&InputFire != 0
	return in
}

// StartMsg asks for a new run
type StartMsg struct {
	Level *int `json:"level,omitempty"` // index into the level queue
}

// StartedMsg confirms a run
type StartedMsg struct {
	RunID      string `json:"rid"`
	Level      int    `json:"level"`
	LevelName  string `json:"name"`
	LevelCount int    `json:"levels"`
	Token      string `json:"token,omitempty"` // controller pairing token
}

// LevelMsg announces a level transition
type LevelMsg struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
}

// ResultMsg is the terminal outcome of a run
type ResultMsg struct {
	RunID    string   `json:"rid"`
	Outcome  string   `json:"outcome"`
	Cleared  int      `json:"cleared"`
	Kills    int      `json:"kills"`
	Lives    int      `json:"lives"`
	Hits     int      `json:"hits"` // lives lost, before any health pickups
	Duration float64  `json:"duration"` // sim seconds
	Badges   []string `json:"badges,omitempty"`
}

// PausedMsg reports the pause state after a toggle
type PausedMsg struct {
	Paused bool `json:"paused"`
}

// ControlMsg is sent by a phone controller to attach to a run
type ControlMsg struct {
	Token string `json:"token"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// PlayerState is the renderer view of the player
type PlayerState struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	W      float64 `msgpack:"w"`
	H      float64 `msgpack:"h"`
	Lives  int     `msgpack:"l"`
	Blink  bool    `msgpack:"b"` // hide this frame
	Invuln bool    `msgpack:"i"`
}

// EnemyState is broadcast per enemy
type EnemyState struct {
	ID     uint32  `msgpack:"id"`
	Kind   string  `msgpack:"k"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	W      float64 `msgpack:"w"`
	H      float64 `msgpack:"h"`
	HP     int     `msgpack:"hp"`
	MaxHP  int     `msgpack:"mhp"`
	Locked bool    `msgpack:"lk,omitempty"`
}

// ProjectileState is broadcast per projectile
type ProjectileState struct {
	ID uint32  `msgpack:"id"`
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
	VX float64 `msgpack:"vx"`
	VY float64 `msgpack:"vy"`
}

// PickupState is broadcast per pickup
type PickupState struct {
	ID   uint32  `msgpack:"id"`
	Kind string  `msgpack:"k"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
}

// EffectState is broadcast per running explosion
type EffectState struct {
	ID    uint32  `msgpack:"id"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Size  float64 `msgpack:"s"`
	Frame int     `msgpack:"f"`
}

// DebugCounts are the population sizes shown on the debug overlay
type DebugCounts struct {
	Enemies  int `msgpack:"e" json:"enemies"`
	Friendly int `msgpack:"fp" json:"friendly"`
	Hostile  int `msgpack:"hp" json:"hostile"`
	Pickups  int `msgpack:"pk" json:"pickups"`
	Effects  int `msgpack:"fx" json:"effects"`
	Pending  int `msgpack:"pe" json:"pending"` // formations not yet spawned
}

// HUDState holds the values drawn on the heads-up display
type HUDState struct {
	Lives    int         `msgpack:"l"`
	Ammo     int         `msgpack:"a"`
	Triple   float64     `msgpack:"t"` // seconds of triple-shot left
	Diagonal float64     `msgpack:"d"` // seconds of diagonal-shot left
	Debug    DebugCounts `msgpack:"dbg"`
}

// FrameState is everything the renderer needs for one frame
type FrameState struct {
	Tick      uint64            `msgpack:"tick"`
	Level     int               `msgpack:"lv"`
	LevelName string            `msgpack:"ln"`
	Player    PlayerState       `msgpack:"p"`
	Enemies   []EnemyState      `msgpack:"e"`
	Friendly  []ProjectileState `msgpack:"fp"`
	Hostile   []ProjectileState `msgpack:"hp"`
	Pickups   []PickupState     `msgpack:"pk"`
	Effects   []EffectState     `msgpack:"fx"`
	HUD       HUDState          `msgpack:"hud"`
	SafeZone  bool              `msgpack:"sz"`
	SafeZoneY float64           `msgpack:"szy"`
	Paused    bool              `msgpack:"pa,omitempty"`
	Outcome   string            `msgpack:"o"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
