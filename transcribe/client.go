// Package transcribe drives the speech-to-text workflow: it calls the external
// transcription service and moves a project through the
// processing -> ready/failed lifecycle.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clipcaption/caption"
	"clipcaption/config"
)

// Result is the transcription service response: raw word segments plus the
// detected language.
type Result struct {
	Words        []caption.RawSegment `json:"words"`
	LanguageCode string               `json:"language_code"`
}

// Client is the speech-to-text boundary. Implementations are injected into
// the workflow so tests can substitute a fake.
type Client interface {
	Transcribe(ctx context.Context, mediaURL string) (*Result, error)
}

// HTTPClient calls the hosted transcription endpoint with a media URL and
// model ID, JSON in and out.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a client for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Minute},
	}
}

type transcribeRequest struct {
	MediaURL string `json:"media_url"`
	ModelID  string `json:"model_id"`
}

func (c *HTTPClient) Transcribe(ctx context.Context, mediaURL string) (*Result, error) {
	body, err := json.Marshal(transcribeRequest{
		MediaURL: mediaURL,
		ModelID:  config.TranscribeModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("transcription service returned %d: %s", resp.StatusCode, string(msg))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}
	return &result, nil
}
