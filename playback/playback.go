// Package playback keeps a secondary audio track aligned with a primary video
// track and samples the primary position on a short interval to drive the
// caption overlay. Media players are external; this package only talks to the
// narrow Player interface.
package playback

// Player is the control surface of one media track.
type Player interface {
	Play()
	Pause()
	// Seek moves the playhead to the given position in seconds.
	Seek(seconds float64)
	SetMuted(muted bool)
	// Position returns the current playhead in seconds.
	Position() float64
}
