package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clipcaption/types"
)

const (
	projectKeyPrefix = "project:"
	projectIndexKey  = "projects:by_update"
)

// RedisConfig holds connection settings for the project store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis stores one JSON document per project plus a sorted-set index scored by
// LastUpdate for the ordered listing. Writes replace the whole document, which
// keeps the single-document atomicity and last-write-wins semantics of the
// hosted document store this mirrors.
type Redis struct {
	client *redis.Client
	now    func() int64
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{
		client: rdb,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Create(ctx context.Context, p *types.Project) error {
	cp := *p
	cp.LastUpdate = r.now()
	return r.save(ctx, &cp)
}

func (r *Redis) Get(ctx context.Context, id string) (*types.Project, error) {
	data, err := r.client.Get(ctx, projectKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p types.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &p, nil
}

func (r *Redis) List(ctx context.Context) ([]*types.Project, error) {
	ids, err := r.client.ZRevRange(ctx, projectIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*types.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry outlived the document; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Redis) UpdateName(ctx context.Context, id, name string) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.Name = name
	})
}

func (r *Redis) UpdateStatus(ctx context.Context, id string, status types.ProjectStatus, errMsg string) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.Status = status
		p.Error = errMsg
	})
}

func (r *Redis) UpdateCaptions(ctx context.Context, id, language string, captions []types.CaptionSegment) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.Language = language
		p.Captions = captions
		p.Status = types.StatusReady
		p.Error = ""
	})
}

func (r *Redis) UpdateSettings(ctx context.Context, id string, s types.CaptionSettings) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.Settings = &s
	})
}

func (r *Redis) UpdateScript(ctx context.Context, id, script string) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.Script = script
	})
}

func (r *Redis) SetGeneratedAudio(ctx context.Context, id, fileID string) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.AudioFileID = fileID
	})
}

func (r *Redis) SetGeneratedVideo(ctx context.Context, id, fileID string) error {
	return r.patch(ctx, id, func(p *types.Project) {
		p.GeneratedVideoFileID = fileID
	})
}

func (r *Redis) Delete(ctx context.Context, id string) (*types.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, projectKeyPrefix+id)
	pipe.ZRem(ctx, projectIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// patch applies a read-modify-write of the whole document. No optimistic
// concurrency token: the later writer wins, matching the documented semantics.
func (r *Redis) patch(ctx context.Context, id string, apply func(*types.Project)) error {
	p, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	apply(p)
	p.LastUpdate = r.now()
	return r.save(ctx, p)
}

func (r *Redis) save(ctx context.Context, p *types.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", p.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, projectKeyPrefix+p.ID, data, 0)
	pipe.ZAdd(ctx, projectIndexKey, redis.Z{Score: float64(p.LastUpdate), Member: p.ID})
	_, err = pipe.Exec(ctx)
	return err
}
