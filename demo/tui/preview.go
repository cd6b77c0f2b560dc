package tui

import (
	"math"
	"sync"
	"time"

	"clipcaption/caption"
	"clipcaption/config"
	"clipcaption/playback"
	"clipcaption/types"
)

// simPlayer simulates one media track for the terminal preview: the playhead
// advances with wall-clock time while playing and loops at the end. Implements
// playback.Player.
type simPlayer struct {
	mu       sync.Mutex
	duration float64
	playing  bool
	muted    bool
	base     float64   // playhead at the last state change
	since    time.Time // when playing resumed
}

func newSimPlayer(duration float64) *simPlayer {
	if duration <= 0 {
		duration = 1
	}
	return &simPlayer{duration: duration}
}

func (p *simPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return
	}
	p.playing = true
	p.since = time.Now()
}

func (p *simPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.base = p.positionLocked()
	p.playing = false
}

func (p *simPlayer) Seek(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = math.Mod(seconds, p.duration)
	p.since = time.Now()
}

func (p *simPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *simPlayer) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *simPlayer) positionLocked() float64 {
	if !p.playing {
		return p.base
	}
	return math.Mod(p.base+time.Since(p.since).Seconds(), p.duration)
}

func (p *simPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *simPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Preview plays a project's captions in the terminal: the playback clock
// samples the simulated video track and resolves the active segment on every
// tick, and the coordinator keeps a simulated voice-over track aligned at
// play/pause edges.
type Preview struct {
	video *simPlayer
	audio *simPlayer
	coord *playback.Coordinator
	clock *playback.Clock

	mu       sync.Mutex
	captions []types.CaptionSegment
	position float64
	active   *types.CaptionSegment
}

// NewPreview builds a stopped preview over the caption sequence. The simulated
// duration runs one second past the last caption so the trailing gap is
// visible.
func NewPreview(captions []types.CaptionSegment) *Preview {
	duration := 1.0
	if n := len(captions); n > 0 {
		duration = captions[n-1].End + 1
	}

	p := &Preview{
		captions: captions,
		video:    newSimPlayer(duration),
		audio:    newSimPlayer(duration),
	}
	p.coord = playback.NewCoordinator(p.video, p.audio)
	p.clock = playback.NewClock(config.ClockInterval, p.video.Position, p.tick)
	return p
}

func (p *Preview) tick(t float64) {
	p.mu.Lock()
	p.position = t
	p.active = caption.Resolve(p.captions, t)
	p.mu.Unlock()
}

// Toggle flips play/pause and returns the new playing state.
func (p *Preview) Toggle() bool {
	playing := !p.video.Playing()
	p.SetPlaying(playing)
	return playing
}

// SetPlaying drives the video track, the sampling clock and the voice-over
// coordinator from one state change.
func (p *Preview) SetPlaying(playing bool) {
	if playing {
		p.video.Play()
		p.clock.Start()
	} else {
		p.video.Pause()
		p.clock.Stop()
		p.tick(p.video.Position())
	}
	p.coord.SetPlaying(playing)
}

// Playing reports whether the preview is running.
func (p *Preview) Playing() bool {
	return p.video.Playing()
}

// Snapshot returns the last sampled position and the caption active at it.
func (p *Preview) Snapshot() (float64, *types.CaptionSegment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, p.active
}

// Close stops the sampling clock.
func (p *Preview) Close() {
	p.SetPlaying(false)
}
