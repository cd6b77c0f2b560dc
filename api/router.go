package api

import (
	"github.com/gin-gonic/gin"

	"clipcaption/blob"
	"clipcaption/events"
	"clipcaption/render"
	"clipcaption/speech"
	"clipcaption/store"
	"clipcaption/transcribe"
)

// Deps holds the collaborators injected into the controllers. Events may be
// nil; async export then falls back to the synchronous path.
type Deps struct {
	Store       store.Store
	Blobs       blob.Store
	Transcriber *transcribe.Workflow
	Speech      *speech.Workflow
	Renderer    *render.Workflow
	Events      events.Publisher
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	RegisterProjectRoutes(r, d)
	RegisterWorkflowRoutes(r, d)
	return r
}
