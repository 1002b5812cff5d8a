// Package audio provides the playback state machine for podcast episodes.
//
// The Player owns playback state (position, duration, playing flag) and
// commands a Device, the single shared audio resource. Commands are applied
// optimistically; events emitted by the device reconcile the state and always
// win over the last commanded intent.
package audio

// EventKind identifies a device-originated playback event.
type EventKind int

const (
	// EventTimeUpdate reports the current playback position.
	EventTimeUpdate EventKind = iota
	// EventDurationKnown reports the track duration once metadata is loaded.
	EventDurationKnown
	// EventEnded reports that playback reached the end of the track.
	EventEnded
)

// Event is a playback event emitted by a Device.
type Event struct {
	Kind EventKind
	// Seconds carries the position (EventTimeUpdate) or the duration
	// (EventDurationKnown). Unused for EventEnded.
	Seconds float64
}

// EventHandler receives device events. Handlers must be safe to call from
// the device's own goroutine.
type EventHandler func(Event)

// Device is a playback backend. Implementations report progress and
// completion through the EventHandler given at construction.
type Device interface {
	// Load prepares the given source URL for playback. Any current
	// playback stops.
	Load(url string) error

	// Play starts or resumes playback of the loaded source.
	Play() error

	// Pause suspends playback, keeping the current position.
	Pause() error

	// Seek repositions playback to the given offset in seconds.
	Seek(seconds float64) error

	// Close releases the device.
	Close() error
}
