package main

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// RunRecorder stores finished runs
type RunRecorder interface {
	RecordRun(r RunRow) error
}

// Game drives one LevelSession at a fixed tick rate and streams frames to
// its viewer. Input from the viewer or a paired controller is latched and
// consumed by the next tick.
type Game struct {
	ID string

	mu         sync.Mutex
	cfg        Config
	session    *LevelSession
	input      ClientInput
	paused     bool
	tick       uint64
	level      int
	startLevel int
	viewer     Broadcaster
	controller Broadcaster
	recorder   RunRecorder
	analytics  *Analytics
	running    bool
	finished   bool
	stop       chan struct{}
}

// NewGame wraps a session. recorder and analytics may be nil.
func NewGame(id string, session *LevelSession, cfg Config, recorder RunRecorder, analytics *Analytics) *Game {
	return &Game{
		ID:         id,
		cfg:        cfg,
		session:    session,
		level:      session.LevelIndex(),
		startLevel: session.LevelIndex(),
		recorder:   recorder,
		analytics:  analytics,
		stop:       make(chan struct{}),
	}
}

// Run starts the game loop. It returns when the run ends or Stop is called.
func (g *Game) Run() {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.mu.Unlock()
	g.analytics.Track(EvtRunStart, g.ID, "")

	ticker := time.NewTicker(g.cfg.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop without recording a result
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.halt()
}

func (g *Game) halt() {
	if !g.finished {
		g.finished = true
		g.running = false
		close(g.stop)
	}
}

// Done is closed once the loop has been stopped
func (g *Game) Done() <-chan struct{} {
	return g.stop
}

// SetViewer attaches the client that receives frames
func (g *Game) SetViewer(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewer = b
}

// SetController attaches a phone controller. Its input replaces the viewer's.
func (g *Game) SetController(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.controller = b
	if g.viewer != nil {
		g.viewer.SendJSON(Envelope{T: MsgCtrlOn})
	}
	g.analytics.Track(EvtControllers, g.ID, "")
}

// RemoveController detaches the controller if it is b
func (g *Game) RemoveController(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller != b {
		return
	}
	g.controller = nil
	g.input = ClientInput{}
	if g.viewer != nil {
		g.viewer.SendJSON(Envelope{T: MsgCtrlOff})
	}
}

// HandleInput latches input from the viewer, ignored while a controller is attached
func (g *Game) HandleInput(from Broadcaster, in ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller != nil && from != g.controller {
		return
	}
	g.input = in
}

// TogglePause flips the pause state and returns the new value
func (g *Game) TogglePause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return g.paused
	}
	g.paused = !g.paused
	g.analytics.Track(EvtPause, g.ID, "")
	return g.paused
}

// Outcome returns the session outcome
func (g *Game) Outcome() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session.Outcome()
}

// LevelCount is the length of the level queue
func (g *Game) LevelCount() int {
	return g.session.LevelCount()
}

// update runs one game tick
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.paused || g.finished {
		return
	}
	g.tick++

	rep := g.session.Step(g.cfg.TickDuration(), g.input)
	if rep.PlayerHit {
		g.analytics.Track(EvtPlayerHit, g.ID, "")
	}
	if idx := g.session.LevelIndex(); idx != g.level {
		g.level = idx
		lv := g.session.Level()
		g.analytics.Track(EvtLevelClear, g.ID, "")
		g.send(Envelope{T: MsgLevel, Data: LevelMsg{Level: idx, Name: lv.Name}})
	}

	if g.session.Done() {
		g.broadcastState()
		g.finish()
		return
	}
	if g.tick%g.cfg.BroadcastEvery() == 0 {
		g.broadcastState()
	}
}

// finish records and reports the terminal outcome, then stops the loop
func (g *Game) finish() {
	s := g.session
	res := ResultMsg{
		RunID:    g.ID,
		Outcome:  s.Outcome().String(),
		Cleared:  s.Cleared(),
		Kills:    s.Kills(),
		Lives:    s.World.Player.Lives,
		Hits:     s.Hits(),
		Duration: round1(s.World.Clock().Seconds()),
	}
	for _, a := range CheckAchievements(res, g.cfg.Player) {
		res.Badges = append(res.Badges, a.ID)
	}

	if g.recorder != nil {
		err := g.recorder.RecordRun(RunRow{
			ID:         g.ID,
			Outcome:    res.Outcome,
			StartLevel: g.startLevel,
			Cleared:    res.Cleared,
			LevelCount: s.LevelCount(),
			Kills:      res.Kills,
			Lives:      res.Lives,
			Duration:   res.Duration,
		})
		if err != nil {
			log.Printf("run %s: %v", g.ID, err)
		}
	}
	if s.Outcome() == OutcomeWon {
		g.analytics.Track(EvtLevelClear, g.ID, "")
	}
	if data, err := json.Marshal(res); err == nil {
		g.analytics.Track(EvtRunEnd, g.ID, string(data))
	}

	g.send(Envelope{T: MsgResult, Data: res})
	g.halt()
}

// Snapshot builds the renderer view of the current frame
func (g *Game) Snapshot() FrameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() FrameState {
	w := g.session.World
	now := w.Clock()
	p := w.Player
	st := FrameState{
		Tick:      g.tick,
		Level:     g.session.LevelIndex(),
		LevelName: g.session.Level().Name,
		Player:    p.ToState(),
		Enemies:   make([]EnemyState, 0, len(w.Enemies)),
		Friendly:  make([]ProjectileState, 0, len(w.Friendly)),
		Hostile:   make([]ProjectileState, 0, len(w.Hostile)),
		Pickups:   make([]PickupState, 0, len(w.Pickups)),
		Effects:   make([]EffectState, 0, len(w.Effects)),
		HUD: HUDState{
			Lives:    p.Lives,
			Ammo:     p.Ammo,
			Triple:   round1(maxDuration(p.TripleUntil-now, 0).Seconds()),
			Diagonal: round1(maxDuration(p.DiagonalUntil-now, 0).Seconds()),
			Debug:    w.Counts(),
		},
		SafeZone:  w.SafeZoneActive(),
		SafeZoneY: g.cfg.Spawn.SafeZoneY,
		Paused:    g.paused,
		Outcome:   g.session.Outcome().String(),
	}
	for _, e := range w.Enemies {
		st.Enemies = append(st.Enemies, e.ToState())
	}
	for _, pr := range w.Friendly {
		st.Friendly = append(st.Friendly, pr.ToState())
	}
	for _, pr := range w.Hostile {
		st.Hostile = append(st.Hostile, pr.ToState())
	}
	for _, pk := range w.Pickups {
		st.Pickups = append(st.Pickups, pk.ToState())
	}
	for _, fx := range w.Effects {
		st.Effects = append(st.Effects, fx.ToState())
	}
	return st
}

// broadcastState sends the current frame as a binary msgpack message
func (g *Game) broadcastState() {
	if g.viewer == nil {
		return
	}
	data, err := msgpack.Marshal(g.snapshot())
	if err != nil {
		log.Printf("msgpack marshal error: %v", err)
		return
	}
	g.viewer.SendBinary(data)
}

func (g *Game) send(msg Envelope) {
	if g.viewer != nil {
		g.viewer.SendJSON(msg)
	}
	if g.controller != nil {
		g.controller.SendJSON(msg)
	}
}
