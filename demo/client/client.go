// Package client is a thin HTTP client for the clipcaption API, used by the
// demo TUI.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clipcaption/types"
)

// Client talks to the API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProjects fetches all projects, most recently updated first.
func (c *Client) ListProjects() ([]*types.Project, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/api/projects")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var payload struct {
		Projects []*types.Project `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.Projects, nil
}

// CreateProject registers an already uploaded video as a new project.
func (c *Client) CreateProject(name, videoFileID string) (*types.Project, error) {
	resp, err := c.post("/api/projects", map[string]string{
		"name":          name,
		"video_file_id": videoFileID,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}
	var p types.Project
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &p, nil
}

// GenerateCaptions triggers transcription for the project. A 409 from the
// server means a run is already in flight.
func (c *Client) GenerateCaptions(projectID string) error {
	resp, err := c.post("/api/projects/"+projectID+"/captions", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return apiError(resp)
	}
	return nil
}

// GenerateSpeech runs voice-over generation and returns the audio URL.
func (c *Client) GenerateSpeech(projectID, voiceID string) (string, error) {
	resp, err := c.post("/api/projects/"+projectID+"/speech", map[string]string{"voice_id": voiceID})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}
	var payload struct {
		AudioURL string `json:"audio_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.AudioURL, nil
}

// UpdateSettings replaces the project's caption settings wholesale; partial
// updates are not supported by the API.
func (c *Client) UpdateSettings(projectID string, s types.CaptionSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	req, err := http.NewRequest(http.MethodPut, c.baseURL+"/api/projects/"+projectID+"/settings", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// Export renders the project and returns the output URL.
func (c *Client) Export(projectID string) (string, error) {
	resp, err := c.post("/api/projects/"+projectID+"/export", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.URL, nil
}

func (c *Client) post(path string, body any) (*http.Response, error) {
	raw := []byte("{}")
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// apiError extracts the {"error": ...} body the API returns on failure.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(raw))
}
