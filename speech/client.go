// Package speech generates a voice-over for a project's script via the
// external text-to-speech service and feeds the result back through
// transcription so the captions match the generated audio.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultVoiceID is used when the caller does not pick a voice.
const DefaultVoiceID = "nova"

// DefaultOutputFormat is the audio container requested from the service.
const DefaultOutputFormat = "mp3_44100_128"

// Client is the text-to-speech boundary.
type Client interface {
	// Synthesize returns the rendered audio bytes for the script.
	Synthesize(ctx context.Context, script, voiceID, outputFormat string) ([]byte, error)
}

// HTTPClient calls the hosted text-to-speech endpoint.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a client for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}
}

type synthesizeRequest struct {
	Text         string `json:"text"`
	VoiceID      string `json:"voice_id"`
	OutputFormat string `json:"output_format"`
}

func (c *HTTPClient) Synthesize(ctx context.Context, script, voiceID, outputFormat string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{
		Text:         script,
		VoiceID:      voiceID,
		OutputFormat: outputFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech service returned %d: %s", resp.StatusCode, string(msg))
	}

	return io.ReadAll(resp.Body)
}
