package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clipcaption/settings"
	"clipcaption/store"
	"clipcaption/types"
)

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	VideoFileID string `json:"video_file_id" binding:"required"`
}

type updateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateScriptRequest struct {
	Script string `json:"script"`
}

// RegisterProjectRoutes registers CRUD routes for projects.
func RegisterProjectRoutes(r *gin.Engine, d Deps) {
	r.POST("/api/projects", createProject(d))
	r.GET("/api/projects", listProjects(d))
	r.GET("/api/projects/:id", getProject(d))
	r.PUT("/api/projects/:id/name", updateProjectName(d))
	r.PUT("/api/projects/:id/settings", updateProjectSettings(d))
	r.PUT("/api/projects/:id/script", updateProjectScript(d))
	r.DELETE("/api/projects/:id", deleteProject(d))
}

func createProject(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and video_file_id are required"})
			return
		}

		size, err := d.Blobs.Size(c.Request.Context(), req.VideoFileID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded video not found: " + req.VideoFileID})
			return
		}

		defaults := types.DefaultCaptionSettings()
		p := &types.Project{
			ID:          uuid.NewString(),
			Name:        req.Name,
			VideoFileID: req.VideoFileID,
			VideoSize:   size,
			Settings:    &defaults,
			Status:      types.StatusProcessing,
		}
		if err := d.Store.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}

		// Kick off transcription immediately; the client observes progress
		// through the status field.
		if err := d.Transcriber.Start(p.ID); err != nil {
			log.Printf("could not start transcription for new project %s: %v", p.ID, err)
		}

		c.JSON(http.StatusCreated, p)
	}
}

func listProjects(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := d.Store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects, "count": len(projects)})
	}
}

func getProject(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := d.Store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func updateProjectName(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateNameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if err := d.Store.UpdateName(c.Request.Context(), c.Param("id"), req.Name); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// updateProjectSettings replaces the full settings object. Partial updates are
// not supported: the client always transmits every field so a lost race leaves
// a coherent object behind.
func updateProjectSettings(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s types.CaptionSettings
		if err := c.ShouldBindJSON(&s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
			return
		}
		if err := settings.Validate(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := d.Store.UpdateSettings(c.Request.Context(), c.Param("id"), s); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func updateProjectScript(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateScriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid script payload"})
			return
		}
		if err := d.Store.UpdateScript(c.Request.Context(), c.Param("id"), req.Script); err != nil {
			respondStoreError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func deleteProject(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, err := d.Store.Delete(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, err)
			return
		}

		// Best-effort asset cleanup; a leaked blob is better than a failed
		// delete from the user's point of view.
		for _, key := range []string{p.VideoFileID, p.AudioFileID, p.GeneratedVideoFileID} {
			if key == "" {
				continue
			}
			if err := d.Blobs.Delete(ctx, key); err != nil {
				log.Printf("could not delete asset %s for project %s: %v", key, p.ID, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
