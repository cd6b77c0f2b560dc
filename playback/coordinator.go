package playback

import "sync"

// Coordinator keeps a secondary audio track aligned with the primary video
// track's play/pause transitions. Alignment happens only at the play edge: the
// secondary is seeked to the primary position once and then runs free, so
// drift during long playback is accepted rather than corrected.
type Coordinator struct {
	mu        sync.Mutex
	primary   Player
	secondary Player
	playing   bool
}

// NewCoordinator wires a primary and secondary track. The secondary may carry
// a generated voice-over that replaces the primary's own audio, which is why
// the primary is muted while playing.
func NewCoordinator(primary, secondary Player) *Coordinator {
	return &Coordinator{primary: primary, secondary: secondary}
}

// SetPlaying feeds the primary track's playing state. Repeated calls with the
// same state are ignored; only edges trigger track control.
func (c *Coordinator) SetPlaying(playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if playing == c.playing {
		return
	}
	c.playing = playing

	if playing {
		c.primary.SetMuted(true)
		c.secondary.Seek(c.primary.Position())
		c.secondary.Play()
	} else {
		c.secondary.Pause()
	}
}

// Playing reports the last observed primary state.
func (c *Coordinator) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
