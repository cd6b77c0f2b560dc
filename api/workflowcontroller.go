package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipcaption/events"
	"clipcaption/render"
	"clipcaption/speech"
	"clipcaption/transcribe"
)

type speechRequest struct {
	VoiceID string `json:"voice_id"`
}

// RegisterWorkflowRoutes registers the long-running workflow triggers.
func RegisterWorkflowRoutes(r *gin.Engine, d Deps) {
	r.POST("/api/projects/:id/captions", generateCaptions(d))
	r.POST("/api/projects/:id/speech", generateSpeech(d))
	r.POST("/api/projects/:id/export", exportProject(d))
}

// generateCaptions triggers transcription in the background and returns 202.
// A second trigger while one is in flight is rejected with 409.
func generateCaptions(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := d.Store.Get(c.Request.Context(), id); err != nil {
			respondStoreError(c, err)
			return
		}
		if err := d.Transcriber.Start(id); err != nil {
			if errors.Is(err, transcribe.ErrAlreadyRunning) {
				c.JSON(http.StatusConflict, gin.H{"error": "transcription already in progress"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "processing"})
	}
}

func generateSpeech(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req speechRequest
		// Body is optional; an empty voice falls back to the default.
		_ = c.ShouldBindJSON(&req)

		url, err := d.Speech.Generate(c.Request.Context(), c.Param("id"), req.VoiceID)
		if err != nil {
			switch {
			case errors.Is(err, speech.ErrNoScript):
				c.JSON(http.StatusBadRequest, gin.H{"error": "project has no script"})
			default:
				respondStoreError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"audio_url": url})
	}
}

// exportProject runs the render round trip synchronously and returns the
// playable URL of the burned-in output. With ?async=true and Kafka configured,
// the job is queued for the render worker instead and the call returns 202.
func exportProject(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if c.Query("async") == "true" && d.Events != nil {
			if _, err := d.Store.Get(c.Request.Context(), id); err != nil {
				respondStoreError(c, err)
				return
			}
			if err := d.Events.PublishRenderRequest(c.Request.Context(), events.RenderRequest{ProjectID: id}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue render"})
				return
			}
			c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
			return
		}

		url, err := d.Renderer.Render(c.Request.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, render.ErrNoCaptions):
				c.JSON(http.StatusBadRequest, gin.H{"error": "project has no captions to render"})
			case errors.Is(err, render.ErrNoSettings):
				c.JSON(http.StatusBadRequest, gin.H{"error": "project has no caption settings"})
			default:
				respondStoreError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
