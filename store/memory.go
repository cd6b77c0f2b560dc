package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"clipcaption/types"
)

// Memory is an in-process Store used by tests and the demo's offline mode.
type Memory struct {
	mu       sync.RWMutex
	projects map[string]*types.Project

	// now is overridable in tests to control LastUpdate ordering.
	now func() int64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		projects: make(map[string]*types.Project),
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

func (m *Memory) Create(ctx context.Context, p *types.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := clone(p)
	cp.LastUpdate = m.now()
	m.projects[cp.ID] = cp
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*types.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (m *Memory) List(ctx context.Context) ([]*types.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*types.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUpdate != out[j].LastUpdate {
			return out[i].LastUpdate > out[j].LastUpdate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) UpdateName(ctx context.Context, id, name string) error {
	return m.patch(id, func(p *types.Project) {
		p.Name = name
	})
}

func (m *Memory) UpdateStatus(ctx context.Context, id string, status types.ProjectStatus, errMsg string) error {
	return m.patch(id, func(p *types.Project) {
		p.Status = status
		p.Error = errMsg
	})
}

func (m *Memory) UpdateCaptions(ctx context.Context, id, language string, captions []types.CaptionSegment) error {
	return m.patch(id, func(p *types.Project) {
		p.Language = language
		p.Captions = append([]types.CaptionSegment(nil), captions...)
		p.Status = types.StatusReady
		p.Error = ""
	})
}

func (m *Memory) UpdateSettings(ctx context.Context, id string, s types.CaptionSettings) error {
	return m.patch(id, func(p *types.Project) {
		p.Settings = &s
	})
}

func (m *Memory) UpdateScript(ctx context.Context, id, script string) error {
	return m.patch(id, func(p *types.Project) {
		p.Script = script
	})
}

func (m *Memory) SetGeneratedAudio(ctx context.Context, id, fileID string) error {
	return m.patch(id, func(p *types.Project) {
		p.AudioFileID = fileID
	})
}

func (m *Memory) SetGeneratedVideo(ctx context.Context, id, fileID string) error {
	return m.patch(id, func(p *types.Project) {
		p.GeneratedVideoFileID = fileID
	})
}

func (m *Memory) Delete(ctx context.Context, id string) (*types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.projects, id)
	return p, nil
}

func (m *Memory) patch(id string, apply func(*types.Project)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return ErrNotFound
	}
	apply(p)
	p.LastUpdate = m.now()
	return nil
}

func clone(p *types.Project) *types.Project {
	cp := *p
	if p.Captions != nil {
		cp.Captions = append([]types.CaptionSegment(nil), p.Captions...)
	}
	if p.Settings != nil {
		s := *p.Settings
		cp.Settings = &s
	}
	return &cp
}
