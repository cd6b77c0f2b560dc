// Package render exports a project by asking the external render microservice
// to burn the captions into the source video, then stores the result as a new
// asset.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/google/uuid"

	"clipcaption/blob"
	"clipcaption/config"
	"clipcaption/store"
	"clipcaption/types"
)

// Validation errors, checked before any network call is made.
var (
	ErrNoCaptions = errors.New("project has no captions")
	ErrNoSettings = errors.New("project has no caption settings")
)

// Request is the render microservice payload.
type Request struct {
	InputURL        string                 `json:"inputUrl"`
	OutputFormat    string                 `json:"outputFormat"`
	Captions        []types.CaptionSegment `json:"captions"`
	CaptionSettings types.CaptionSettings  `json:"captionSettings"`
	AudioURL        string                 `json:"audioUrl,omitempty"`
}

// Workflow performs the synchronous export round trip.
type Workflow struct {
	store    store.Store
	blobs    blob.Store
	endpoint string
	client   *http.Client
}

// NewWorkflow wires the export workflow against the configured microservice
// endpoint. client may be nil to use a default with the render timeout.
func NewWorkflow(st store.Store, blobs blob.Store, endpoint string, client *http.Client) *Workflow {
	if client == nil {
		client = &http.Client{Timeout: config.RenderTimeout}
	}
	return &Workflow{
		store:    st,
		blobs:    blobs,
		endpoint: endpoint,
		client:   client,
	}
}

// Render validates the project, posts the render request, stores the returned
// video bytes and records the generated asset. Returns the playable URL of the
// rendered output. Failures surface as errors; there is no automatic retry.
func (w *Workflow) Render(ctx context.Context, projectID string) (string, error) {
	p, err := w.store.Get(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("load project: %w", err)
	}
	if len(p.Captions) == 0 {
		return "", ErrNoCaptions
	}
	if p.Settings == nil {
		return "", ErrNoSettings
	}

	inputURL, err := w.blobs.URL(ctx, p.VideoFileID)
	if err != nil {
		return "", fmt.Errorf("resolve video URL: %w", err)
	}

	req := Request{
		InputURL:        inputURL,
		OutputFormat:    config.OutputFormat,
		Captions:        p.Captions,
		CaptionSettings: ScaleSettings(*p.Settings),
	}
	if p.AudioFileID != "" {
		audioURL, err := w.blobs.URL(ctx, p.AudioFileID)
		if err != nil {
			return "", fmt.Errorf("resolve audio URL: %w", err)
		}
		req.AudioURL = audioURL
	}

	video, err := w.post(ctx, req)
	if err != nil {
		return "", fmt.Errorf("render project %s: %w", projectID, err)
	}

	key := "renders/" + uuid.NewString() + ".mp4"
	if err := w.blobs.Put(ctx, key, bytes.NewReader(video), "video/mp4"); err != nil {
		return "", fmt.Errorf("store rendered video: %w", err)
	}
	if err := w.store.SetGeneratedVideo(ctx, projectID, key); err != nil {
		return "", fmt.Errorf("record rendered video: %w", err)
	}

	url, err := w.blobs.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve rendered video URL: %w", err)
	}
	log.Printf("rendered project %s: %d bytes -> %s", projectID, len(video), key)
	return url, nil
}

// ScaleSettings returns a copy with the font size translated from preview
// sizing to output sizing.
func ScaleSettings(s types.CaptionSettings) types.CaptionSettings {
	s.FontSize = int(math.Floor(float64(s.FontSize) * config.RenderFontScale))
	return s
}

func (w *Workflow) post(ctx context.Context, reqBody Request) ([]byte, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(renderErrorMessage(resp))
	}

	return io.ReadAll(resp.Body)
}

// renderErrorMessage extracts the {"error": ...} body the service returns on
// failure, falling back to the raw body.
func renderErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Sprintf("render service error: %s", payload.Error)
	}
	return fmt.Sprintf("render service returned %d: %s", resp.StatusCode, string(raw))
}
