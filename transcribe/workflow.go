package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"clipcaption/blob"
	"clipcaption/caption"
	"clipcaption/events"
	"clipcaption/store"
	"clipcaption/types"
)

// ErrAlreadyRunning is returned when a transcription is triggered for a
// project that already has one in flight in this process. Across processes the
// remote status field is the only guard, so two devices can still race; the
// later writer wins.
var ErrAlreadyRunning = errors.New("transcription already in flight")

// Workflow runs the transcription state machine for projects.
type Workflow struct {
	store  store.Store
	blobs  blob.Store
	client Client
	events events.Publisher // optional

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewWorkflow wires the workflow's collaborators. events may be nil.
func NewWorkflow(st store.Store, blobs blob.Store, client Client, pub events.Publisher) *Workflow {
	return &Workflow{
		store:    st,
		blobs:    blobs,
		client:   client,
		events:   pub,
		inFlight: make(map[string]bool),
	}
}

// Running reports whether this process has a transcription in flight for the
// project.
func (w *Workflow) Running(projectID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight[projectID]
}

// Start acquires the in-flight guard and runs the transcription in the
// background. Returns ErrAlreadyRunning when the project is busy. The run uses
// a background context: navigating away must not abort an in-flight attempt.
func (w *Workflow) Start(projectID string) error {
	if err := w.acquire(projectID); err != nil {
		return err
	}
	go func() {
		defer w.release(projectID)
		if err := w.runLocked(context.Background(), projectID, ""); err != nil {
			log.Printf("transcription for project %s failed: %v", projectID, err)
		}
	}()
	return nil
}

// Run executes a transcription synchronously against the project's source
// video.
func (w *Workflow) Run(ctx context.Context, projectID string) error {
	return w.run(ctx, projectID, "")
}

// RunForMedia transcribes the given media URL instead of the project's source
// video. Used after voice-over generation so captions line up with the
// generated audio.
func (w *Workflow) RunForMedia(ctx context.Context, projectID, mediaURL string) error {
	return w.run(ctx, projectID, mediaURL)
}

func (w *Workflow) run(ctx context.Context, projectID, mediaURL string) error {
	if err := w.acquire(projectID); err != nil {
		return err
	}
	defer w.release(projectID)
	return w.runLocked(ctx, projectID, mediaURL)
}

func (w *Workflow) runLocked(ctx context.Context, projectID, mediaURL string) error {
	p, err := w.store.Get(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	// Persist processing before the long remote call so a reload mid-flight
	// still shows progress.
	current := p.Status
	if err := w.setStatus(ctx, current, projectID, types.StatusProcessing, ""); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	current = types.StatusProcessing

	if mediaURL == "" {
		mediaURL, err = w.blobs.URL(ctx, p.VideoFileID)
		if err != nil {
			return w.fail(ctx, projectID, current, fmt.Errorf("resolve video URL: %w", err))
		}
	}

	result, err := w.client.Transcribe(ctx, mediaURL)
	if err != nil {
		return w.fail(ctx, projectID, current, err)
	}

	// UpdateCaptions writes captions+language+ready in one patch; the
	// transition is checked here so every status write passes the table.
	if !CanTransition(current, types.StatusReady) {
		return w.fail(ctx, projectID, current, fmt.Errorf("illegal status transition %s -> %s", current, types.StatusReady))
	}
	segments := caption.Normalize(result.Words)
	if err := w.store.UpdateCaptions(ctx, projectID, result.LanguageCode, segments); err != nil {
		return w.fail(ctx, projectID, current, fmt.Errorf("persist captions: %w", err))
	}

	log.Printf("transcribed project %s: %d segments, language %s", projectID, len(segments), result.LanguageCode)
	w.publish(ctx, projectID, types.StatusReady, "")
	return nil
}

// fail persists the failure so it is visible across sessions, then returns a
// single normalized error to the caller. The write goes through the same
// transition guard as every other status change.
func (w *Workflow) fail(ctx context.Context, projectID string, from types.ProjectStatus, cause error) error {
	if err := w.setStatus(ctx, from, projectID, types.StatusFailed, cause.Error()); err != nil {
		log.Printf("could not persist failure for project %s: %v", projectID, err)
	}
	return fmt.Errorf("transcribe project %s: %w", projectID, cause)
}

func (w *Workflow) setStatus(ctx context.Context, from types.ProjectStatus, projectID string, to types.ProjectStatus, errMsg string) error {
	// A fresh project is created in processing; re-entering the same status is
	// a no-op edge, not a violation.
	if from != to && !CanTransition(from, to) {
		return fmt.Errorf("illegal status transition %s -> %s", from, to)
	}
	if err := w.store.UpdateStatus(ctx, projectID, to, errMsg); err != nil {
		return err
	}
	w.publish(ctx, projectID, to, errMsg)
	return nil
}

func (w *Workflow) publish(ctx context.Context, projectID string, status types.ProjectStatus, errMsg string) {
	if w.events == nil {
		return
	}
	ev := events.StatusEvent{
		ProjectID: projectID,
		Status:    status,
		Error:     errMsg,
		Timestamp: time.Now(),
	}
	if err := w.events.PublishStatus(ctx, ev); err != nil {
		log.Printf("publish status event for project %s: %v", projectID, err)
	}
}

func (w *Workflow) acquire(projectID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[projectID] {
		return ErrAlreadyRunning
	}
	w.inFlight[projectID] = true
	return nil
}

func (w *Workflow) release(projectID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, projectID)
}
