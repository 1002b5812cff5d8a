package audio

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openspaces/spaces-cli/pkg/logging"
)

// mockDevice records commands and lets tests script failures.
type mockDevice struct {
	mu       sync.Mutex
	loaded   []string
	plays    int
	pauses   int
	seeks    []float64
	playErr  error
	pauseErr error
}

func (m *mockDevice) Load(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = append(m.loaded, url)
	return nil
}

func (m *mockDevice) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	return m.playErr
}

func (m *mockDevice) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	return m.pauseErr
}

func (m *mockDevice) Seek(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, seconds)
	return nil
}

func (m *mockDevice) Close() error { return nil }

func newTestPlayer(t *testing.T) (*Player, *mockDevice) {
	t.Helper()
	dev := &mockDevice{}
	return NewPlayer(dev, logging.Nop()), dev
}

func TestLoad_ResetsState(t *testing.T) {
	p, dev := newTestPlayer(t)

	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	p.HandleEvent(Event{Kind: EventDurationKnown, Seconds: 120})
	p.HandleEvent(Event{Kind: EventTimeUpdate, Seconds: 30})
	require.NoError(t, p.TogglePlayPause())

	// Loading a new episode resets position and playing before it is active.
	require.NoError(t, p.Load("http://svc/audio/ep2.mp3"))

	st := p.State()
	assert.Equal(t, "http://svc/audio/ep2.mp3", st.Source)
	assert.False(t, st.Playing)
	assert.Zero(t, st.CurrentTime)
	assert.Zero(t, st.Duration)
	assert.Equal(t, []string{"http://svc/audio/ep1.mp3", "http://svc/audio/ep2.mp3"}, dev.loaded)
}

func TestTogglePlayPause(t *testing.T) {
	p, dev := newTestPlayer(t)
	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))

	require.NoError(t, p.TogglePlayPause())
	assert.True(t, p.State().Playing)
	assert.Equal(t, 1, dev.plays)

	require.NoError(t, p.TogglePlayPause())
	assert.False(t, p.State().Playing)
	assert.Equal(t, 1, dev.pauses)
}

func TestTogglePlayPause_NoSource(t *testing.T) {
	p, _ := newTestPlayer(t)
	assert.Error(t, p.TogglePlayPause())
}

func TestTogglePlayPause_DeviceFailureRollsBack(t *testing.T) {
	p, dev := newTestPlayer(t)
	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	dev.playErr = errors.New("device gone")

	err := p.TogglePlayPause()
	require.Error(t, err)
	assert.False(t, p.State().Playing, "optimistic flip undone on command failure")
}

func TestSeek_Clamping(t *testing.T) {
	p, dev := newTestPlayer(t)
	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	p.HandleEvent(Event{Kind: EventDurationKnown, Seconds: 120})

	require.NoError(t, p.Seek(-5))
	assert.Zero(t, p.State().CurrentTime)

	require.NoError(t, p.Seek(500))
	assert.Equal(t, 120.0, p.State().CurrentTime)

	require.NoError(t, p.Seek(60))
	assert.Equal(t, 60.0, p.State().CurrentTime)

	assert.Equal(t, []float64{0, 120, 60}, dev.seeks)
}

func TestHandleEvent_EndedWinsOverIntent(t *testing.T) {
	p, _ := newTestPlayer(t)
	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	p.HandleEvent(Event{Kind: EventDurationKnown, Seconds: 90})
	require.NoError(t, p.TogglePlayPause())
	require.True(t, p.State().Playing)

	// Playback ran out without a user action.
	p.HandleEvent(Event{Kind: EventEnded})

	st := p.State()
	assert.False(t, st.Playing)
	assert.Equal(t, 90.0, st.CurrentTime)
}

func TestHandleEvent_TimeUpdateClamped(t *testing.T) {
	p, _ := newTestPlayer(t)
	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	p.HandleEvent(Event{Kind: EventDurationKnown, Seconds: 100})

	p.HandleEvent(Event{Kind: EventTimeUpdate, Seconds: 250})
	assert.Equal(t, 100.0, p.State().CurrentTime)
}

func TestSubscribe(t *testing.T) {
	p, _ := newTestPlayer(t)
	var states []State
	p.Subscribe(func(s State) { states = append(states, s) })

	require.NoError(t, p.Load("http://svc/audio/ep1.mp3"))
	require.NoError(t, p.TogglePlayPause())

	require.NotEmpty(t, states)
	last := states[len(states)-1]
	assert.True(t, last.Playing)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{75, "1:15"},
		{3599, "59:59"},
		{600, "10:00"},
		{-3, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.in))
	}
}
