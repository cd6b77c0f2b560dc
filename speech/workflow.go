package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"clipcaption/blob"
	"clipcaption/store"
	"clipcaption/transcribe"
)

// ErrNoScript is returned when voice-over generation is requested for a
// project without a script.
var ErrNoScript = errors.New("project has no script")

// Workflow turns a project's script into a stored voice-over asset and
// re-transcribes it for synchronized captions.
type Workflow struct {
	store       store.Store
	blobs       blob.Store
	client      Client
	transcriber *transcribe.Workflow
}

// NewWorkflow wires the voice-over workflow.
func NewWorkflow(st store.Store, blobs blob.Store, client Client, transcriber *transcribe.Workflow) *Workflow {
	return &Workflow{
		store:       st,
		blobs:       blobs,
		client:      client,
		transcriber: transcriber,
	}
}

// Generate synthesizes audio for the project's script, stores it, records the
// asset on the project and re-runs transcription against it. Returns the
// playable URL of the generated audio.
func (w *Workflow) Generate(ctx context.Context, projectID, voiceID string) (string, error) {
	p, err := w.store.Get(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("load project: %w", err)
	}
	if p.Script == "" {
		return "", ErrNoScript
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	audio, err := w.client.Synthesize(ctx, p.Script, voiceID, DefaultOutputFormat)
	if err != nil {
		return "", fmt.Errorf("generate speech for project %s: %w", projectID, err)
	}

	key := "audio/" + uuid.NewString() + ".mp3"
	if err := w.blobs.Put(ctx, key, bytes.NewReader(audio), "audio/mpeg"); err != nil {
		return "", fmt.Errorf("store generated audio: %w", err)
	}
	if err := w.store.SetGeneratedAudio(ctx, projectID, key); err != nil {
		return "", fmt.Errorf("record generated audio: %w", err)
	}

	url, err := w.blobs.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve generated audio URL: %w", err)
	}

	// Captions must follow the voice-over, not the original video audio. The
	// audio asset is already stored and recorded at this point, so the
	// re-transcription must not be aborted by the caller hanging up; like a
	// directly triggered transcription it runs to completion.
	if err := w.transcriber.RunForMedia(context.WithoutCancel(ctx), projectID, url); err != nil {
		log.Printf("re-transcription after voice-over for project %s failed: %v", projectID, err)
		return "", err
	}

	return url, nil
}
