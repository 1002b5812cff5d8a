package audio

import (
	"fmt"
	"sync"

	"github.com/openspaces/spaces-cli/pkg/logging"
)

// State is a snapshot of the player's observable playback state.
// CurrentTime is always within [0, Duration] when Duration is known.
type State struct {
	// Source is the URL of the loaded track, empty when nothing is loaded.
	Source string
	// Playing is the optimistic playing flag, reconciled by device events.
	Playing bool
	// CurrentTime is the playback position in seconds.
	CurrentTime float64
	// Duration is the track length in seconds, 0 until metadata is known.
	Duration float64
}

// Player wraps a single playable audio resource. It holds at most one active
// track and serializes all state changes behind a mutex; device events and
// transport commands may arrive from different goroutines.
type Player struct {
	mu    sync.Mutex
	dev   Device
	state State
	subs  []func(State)
	log   logging.Logger
}

// NewPlayer creates a Player commanding the given device. Wire the returned
// player's HandleEvent into the device's event stream.
func NewPlayer(dev Device, log logging.Logger) *Player {
	if log == nil {
		log = logging.Nop()
	}
	return &Player{dev: dev, log: log}
}

// Subscribe registers fn to be called with a state snapshot after every
// state change. Callbacks run synchronously with the change applied.
func (p *Player) Subscribe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// State returns a snapshot of the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load makes url the active track. Position resets to 0 and playback stops
// before the new source becomes active; loading over a playing track never
// leaves the old position visible against the new audio.
func (p *Player) Load(url string) error {
	p.mu.Lock()
	p.state = State{Source: url}
	p.notifyLocked()
	p.mu.Unlock()

	if err := p.dev.Load(url); err != nil {
		return fmt.Errorf("loading audio source: %w", err)
	}
	return nil
}

// TogglePlayPause flips the playing flag and commands the device. The flag
// is optimistic; device events reconcile it if reality disagrees.
func (p *Player) TogglePlayPause() error {
	p.mu.Lock()
	if p.state.Source == "" {
		p.mu.Unlock()
		return fmt.Errorf("no audio source loaded")
	}
	starting := !p.state.Playing
	p.state.Playing = starting
	p.notifyLocked()
	p.mu.Unlock()

	var err error
	if starting {
		err = p.dev.Play()
	} else {
		err = p.dev.Pause()
	}
	if err != nil {
		// Command failed: undo the optimistic flip.
		p.mu.Lock()
		p.state.Playing = !starting
		p.notifyLocked()
		p.mu.Unlock()
		return fmt.Errorf("commanding playback device: %w", err)
	}
	return nil
}

// Seek clamps seconds into [0, Duration], updates the position, and commands
// the device to reposition.
func (p *Player) Seek(seconds float64) error {
	p.mu.Lock()
	if p.state.Source == "" {
		p.mu.Unlock()
		return fmt.Errorf("no audio source loaded")
	}
	clamped := clamp(seconds, p.state.Duration)
	p.state.CurrentTime = clamped
	p.notifyLocked()
	p.mu.Unlock()

	if err := p.dev.Seek(clamped); err != nil {
		return fmt.Errorf("commanding playback device: %w", err)
	}
	return nil
}

// HandleEvent reconciles player state against a device-originated event.
// Device events take precedence over the last commanded intent.
func (p *Player) HandleEvent(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case EventTimeUpdate:
		p.state.CurrentTime = clamp(ev.Seconds, p.state.Duration)
	case EventDurationKnown:
		p.state.Duration = ev.Seconds
		p.state.CurrentTime = clamp(p.state.CurrentTime, p.state.Duration)
	case EventEnded:
		p.state.Playing = false
		if p.state.Duration > 0 {
			p.state.CurrentTime = p.state.Duration
		}
	default:
		p.log.Warn("unknown device event", logging.F("kind", int(ev.Kind)))
		return
	}
	p.notifyLocked()
}

// Close releases the underlying device.
func (p *Player) Close() error {
	return p.dev.Close()
}

// notifyLocked invokes subscribers with the current state. Callers hold p.mu.
func (p *Player) notifyLocked() {
	snapshot := p.state
	for _, fn := range p.subs {
		fn(snapshot)
	}
}

// clamp restricts t to [0, duration]. An unknown duration (0) only clamps
// the lower bound.
func clamp(t, duration float64) float64 {
	if t < 0 {
		return 0
	}
	if duration > 0 && t > duration {
		return duration
	}
	return t
}

// FormatTime renders seconds as minutes:seconds with the seconds zero-padded
// to two digits, e.g. 75 -> "1:15".
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
