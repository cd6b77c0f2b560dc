package transcribe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"clipcaption/blob"
	"clipcaption/caption"
	"clipcaption/events"
	"clipcaption/store"
	"clipcaption/types"
)

// fakeClient returns a canned result or error, optionally blocking until
// released to test the in-flight guard.
type fakeClient struct {
	result  *Result
	err     error
	block   chan struct{}
	mu      sync.Mutex
	calls   int
	lastURL string
}

func (c *fakeClient) Transcribe(ctx context.Context, mediaURL string) (*Result, error) {
	c.mu.Lock()
	c.calls++
	c.lastURL = mediaURL
	c.mu.Unlock()
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []events.StatusEvent
}

func (c *capturedEvents) PublishStatus(ctx context.Context, ev events.StatusEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *capturedEvents) PublishRenderRequest(ctx context.Context, req events.RenderRequest) error {
	return nil
}

func (c *capturedEvents) statuses() []types.ProjectStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.ProjectStatus, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.Status)
	}
	return out
}

func f(v float64) *float64 { return &v }

func newProject(t *testing.T, st store.Store, blobs *blob.Memory) *types.Project {
	t.Helper()
	ctx := context.Background()
	if err := blobs.Put(ctx, "videos/v1", strings.NewReader("fake video bytes"), "video/mp4"); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	s := types.DefaultCaptionSettings()
	p := &types.Project{ID: "p1", Name: "clip", VideoFileID: "videos/v1", Status: types.StatusProcessing, Settings: &s}
	if err := st.Create(ctx, p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

// TestRunSuccess drives a full transcription: raw output is normalized (event
// entry dropped, missing end defaulted) and persisted together with the
// language and ready status.
func TestRunSuccess(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs)

	client := &fakeClient{result: &Result{
		LanguageCode: "eng",
		Words: []caption.RawSegment{
			{Text: "(music)", Start: f(0), End: f(0.4), Kind: types.SegmentAudioEvent},
			{Text: "Hi", Start: f(0.5), Kind: types.SegmentWord},
		},
	}}
	pub := &capturedEvents{}
	w := NewWorkflow(st, blobs, client, pub)

	if err := w.Run(context.Background(), "p1"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	p, _ := st.Get(context.Background(), "p1")
	if p.Status != types.StatusReady {
		t.Fatalf("status = %s, want ready", p.Status)
	}
	if p.Language != "eng" {
		t.Fatalf("language = %q, want eng", p.Language)
	}
	if len(p.Captions) != 1 || p.Captions[0].Text != "Hi" {
		t.Fatalf("captions = %+v, want the single normalized word", p.Captions)
	}
	if p.Captions[0].End != 0.6 {
		t.Fatalf("End = %v, want start+0.1", p.Captions[0].End)
	}
	if p.Captions[0].SpeakerID != "speaker_1" {
		t.Fatalf("SpeakerID = %q, want sentinel", p.Captions[0].SpeakerID)
	}
	if client.lastURL != "mem://videos/v1" {
		t.Fatalf("transcribed URL = %q, want resolved blob URL", client.lastURL)
	}

	got := pub.statuses()
	want := []types.ProjectStatus{types.StatusProcessing, types.StatusReady}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("published statuses = %v, want %v", got, want)
	}
}

// TestRunFailurePersists checks a remote error lands in the document as
// status=failed with the message, visible to other sessions.
func TestRunFailurePersists(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs)

	client := &fakeClient{err: errors.New("speech service unavailable")}
	w := NewWorkflow(st, blobs, client, nil)

	err := w.Run(context.Background(), "p1")
	if err == nil {
		t.Fatal("Run = nil, want error")
	}

	p, _ := st.Get(context.Background(), "p1")
	if p.Status != types.StatusFailed {
		t.Fatalf("status = %s, want failed", p.Status)
	}
	if !strings.Contains(p.Error, "speech service unavailable") {
		t.Fatalf("error = %q, want the service message", p.Error)
	}
}

// TestRerunReplacesWholesale verifies a second run replaces the previous
// caption sequence rather than merging into it.
func TestRerunReplacesWholesale(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs)

	client := &fakeClient{result: &Result{
		LanguageCode: "eng",
		Words: []caption.RawSegment{
			{Text: "old", Start: f(0), End: f(0.5), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
			{Text: "words", Start: f(0.5), End: f(1.0), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
		},
	}}
	w := NewWorkflow(st, blobs, client, nil)
	if err := w.Run(context.Background(), "p1"); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	client.result = &Result{
		LanguageCode: "spa",
		Words: []caption.RawSegment{
			{Text: "nuevo", Start: f(0), End: f(0.8), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
		},
	}
	if err := w.Run(context.Background(), "p1"); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	p, _ := st.Get(context.Background(), "p1")
	if len(p.Captions) != 1 || p.Captions[0].Text != "nuevo" || p.Language != "spa" {
		t.Fatalf("captions after rerun = %+v (%s), want wholesale replacement", p.Captions, p.Language)
	}
}

// TestRetryAfterFailure re-enters processing from failed and clears the error
// on success.
func TestRetryAfterFailure(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs)

	client := &fakeClient{err: errors.New("boom")}
	w := NewWorkflow(st, blobs, client, nil)
	if err := w.Run(context.Background(), "p1"); err == nil {
		t.Fatal("first Run should fail")
	}

	client.err = nil
	client.result = &Result{LanguageCode: "eng", Words: []caption.RawSegment{
		{Text: "ok", Start: f(0), End: f(0.3), Kind: types.SegmentWord, SpeakerID: "speaker_1"},
	}}
	if err := w.Run(context.Background(), "p1"); err != nil {
		t.Fatalf("retry Run: %v", err)
	}

	p, _ := st.Get(context.Background(), "p1")
	if p.Status != types.StatusReady || p.Error != "" {
		t.Fatalf("after retry: status=%s error=%q, want ready with no error", p.Status, p.Error)
	}
}

// TestRunSingleFlight triggers a second run for the same project while the
// first is blocked inside the remote call.
func TestRunSingleFlight(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs)

	release := make(chan struct{})
	client := &fakeClient{
		block:  release,
		result: &Result{LanguageCode: "eng"},
	}
	w := NewWorkflow(st, blobs, client, nil)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background(), "p1") }()

	// Wait for the first run to reach the remote call.
	for {
		client.mu.Lock()
		started := client.calls > 0
		client.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := w.Run(context.Background(), "p1"); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("concurrent Run = %v, want ErrAlreadyRunning", err)
	}
	if !w.Running("p1") {
		t.Fatal("Running(p1) = false during in-flight run")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if w.Running("p1") {
		t.Fatal("Running(p1) = true after completion")
	}
}

// TestStatusWritesPassGuard verifies every status write path consults the
// transition table: an illegal edge is rejected before anything reaches the
// store, including the failure path.
func TestStatusWritesPassGuard(t *testing.T) {
	st := store.NewMemory()
	blobs := blob.NewMemory()
	newProject(t, st, blobs) // seeded in processing

	w := NewWorkflow(st, blobs, &fakeClient{}, nil)
	ctx := context.Background()

	if err := w.setStatus(ctx, types.StatusFailed, "p1", types.StatusReady, ""); err == nil {
		t.Fatal("setStatus(failed -> ready) = nil, want illegal transition error")
	}
	p, _ := st.Get(ctx, "p1")
	if p.Status != types.StatusProcessing {
		t.Fatalf("status = %s after rejected write, want untouched processing", p.Status)
	}

	// fail still returns the normalized cause, but refuses the write when the
	// claimed current status cannot legally reach failed.
	err := w.fail(ctx, "p1", types.StatusReady, errors.New("boom"))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("fail = %v, want wrapped cause", err)
	}
	p, _ = st.Get(ctx, "p1")
	if p.Status != types.StatusProcessing || p.Error != "" {
		t.Fatalf("document mutated by rejected failure write: status=%s error=%q", p.Status, p.Error)
	}

	// The legal edge persists as before.
	if err := w.fail(ctx, "p1", types.StatusProcessing, errors.New("boom")); err == nil {
		t.Fatal("fail = nil, want wrapped cause")
	}
	p, _ = st.Get(ctx, "p1")
	if p.Status != types.StatusFailed || p.Error != "boom" {
		t.Fatalf("after legal failure write: status=%s error=%q", p.Status, p.Error)
	}
}

func TestRunMissingProject(t *testing.T) {
	w := NewWorkflow(store.NewMemory(), blob.NewMemory(), &fakeClient{}, nil)
	err := w.Run(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Run(missing) = %v, want ErrNotFound", err)
	}
}
