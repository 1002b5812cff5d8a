package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/openspaces/spaces-cli/pkg/logging"
)

// playerCandidates are probed in order when no player command is configured.
var playerCandidates = []string{"afplay", "mpv", "ffplay"}

// CommandDevice plays audio by running an external player process. Pause
// kills the process and remembers the position; play restarts the player at
// that offset when the binary supports it.
type CommandDevice struct {
	mu       sync.Mutex
	command  string
	source   string
	position float64
	playing  bool
	startAt  time.Time
	proc     *exec.Cmd
	gen      int
	handler  EventHandler
	log      logging.Logger
}

// NewCommandDevice creates a device backed by the given player command.
// An empty command auto-detects the first available of afplay, mpv, ffplay.
func NewCommandDevice(command string, handler EventHandler, log logging.Logger) (*CommandDevice, error) {
	if log == nil {
		log = logging.Nop()
	}
	if handler == nil {
		handler = func(Event) {}
	}

	if command == "" {
		for _, candidate := range playerCandidates {
			if _, err := exec.LookPath(candidate); err == nil {
				command = candidate
				break
			}
		}
	}
	if command == "" {
		return nil, fmt.Errorf("no audio player found (looked for %v); set player_command in config", playerCandidates)
	}

	return &CommandDevice{command: command, handler: handler, log: log}, nil
}

// Load implements Device.
func (d *CommandDevice) Load(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.source = url
	d.position = 0
	return nil
}

// Play implements Device.
func (d *CommandDevice) Play() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.source == "" {
		return fmt.Errorf("no source loaded")
	}
	if d.playing {
		return nil
	}
	return d.startLocked()
}

// Pause implements Device.
func (d *CommandDevice) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.syncPositionLocked()
	d.stopLocked()
	return nil
}

// Seek implements Device. Seeking while playing restarts the player process
// at the new offset.
func (d *CommandDevice) Seek(seconds float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	wasPlaying := d.playing
	d.stopLocked()
	d.position = seconds
	if wasPlaying {
		return d.startLocked()
	}
	return nil
}

// Close implements Device.
func (d *CommandDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	return nil
}

// startLocked launches the player process and its watcher goroutines.
// Callers hold d.mu.
func (d *CommandDevice) startLocked() error {
	cmd := exec.Command(d.command, d.argsFor()...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", d.command, err)
	}

	d.proc = cmd
	d.playing = true
	d.startAt = time.Now()
	d.gen++
	gen := d.gen

	// Process watcher: a clean exit while still current means the track ended.
	go func() {
		err := cmd.Wait()
		d.mu.Lock()
		current := d.gen == gen && d.playing
		if current {
			d.playing = false
			d.proc = nil
		}
		d.mu.Unlock()
		if current && err == nil {
			d.handler(Event{Kind: EventEnded})
		}
	}()

	// Position ticker: the external player gives no progress feed, so
	// elapsed wall time approximates the playback position.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			d.mu.Lock()
			if d.gen != gen || !d.playing {
				d.mu.Unlock()
				return
			}
			pos := d.position + time.Since(d.startAt).Seconds()
			d.mu.Unlock()
			d.handler(Event{Kind: EventTimeUpdate, Seconds: pos})
		}
	}()

	return nil
}

// stopLocked kills any running player process. Callers hold d.mu.
func (d *CommandDevice) stopLocked() {
	d.gen++
	if d.proc != nil && d.proc.Process != nil {
		if err := d.proc.Process.Kill(); err != nil {
			d.log.Debug("killing player process", logging.Err(err))
		}
	}
	d.proc = nil
	d.playing = false
}

// syncPositionLocked folds elapsed play time into the stored position.
// Callers hold d.mu.
func (d *CommandDevice) syncPositionLocked() {
	if d.playing {
		d.position += time.Since(d.startAt).Seconds()
	}
}

// argsFor builds player arguments, including a start offset where the
// binary supports one. afplay cannot seek; it always starts from the top.
func (d *CommandDevice) argsFor() []string {
	offset := strconv.FormatFloat(d.position, 'f', 3, 64)
	switch d.command {
	case "mpv":
		return []string{"--no-video", "--really-quiet", "--start=" + offset, d.source}
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-ss", offset, d.source}
	default:
		return []string{d.source}
	}
}
