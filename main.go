package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"clipcaption/api"
	"clipcaption/blob"
	"clipcaption/config"
	"clipcaption/events"
	"clipcaption/render"
	"clipcaption/speech"
	"clipcaption/store"
	"clipcaption/transcribe"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	ctx := context.Background()

	projects, err := initializeStore(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize project store: %v", err)
	}

	blobs, err := initializeBlobs(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	publisher := initializeEvents()

	transcriber := transcribe.NewWorkflow(projects, blobs,
		transcribe.NewHTTPClient(config.EnvOr("TRANSCRIBE_URL", "http://localhost:9100/transcribe")),
		publisher)
	voiceover := speech.NewWorkflow(projects, blobs,
		speech.NewHTTPClient(config.EnvOr("TTS_URL", "http://localhost:9200/synthesize")),
		transcriber)
	renderer := render.NewWorkflow(projects, blobs,
		config.EnvOr("RENDER_URL", "http://localhost:9300/render"), nil)

	r := api.NewRouter(api.Deps{
		Store:       projects,
		Blobs:       blobs,
		Transcriber: transcriber,
		Speech:      voiceover,
		Renderer:    renderer,
		Events:      publisher,
	})

	addr := ":" + config.EnvOr("PORT", "8080")
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  POST   /api/projects")
	log.Println("  GET    /api/projects")
	log.Println("  GET    /api/projects/:id")
	log.Println("  PUT    /api/projects/:id/name")
	log.Println("  PUT    /api/projects/:id/settings")
	log.Println("  PUT    /api/projects/:id/script")
	log.Println("  DELETE /api/projects/:id")
	log.Println("  POST   /api/projects/:id/captions")
	log.Println("  POST   /api/projects/:id/speech")
	log.Println("  POST   /api/projects/:id/export")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeStore connects to Redis when REDIS_ADDR is set, otherwise falls
// back to the in-memory store for local development.
func initializeStore(ctx context.Context) (store.Store, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Println("REDIS_ADDR not set; using in-memory project store")
		return store.NewMemory(), nil
	}

	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Warning: invalid REDIS_DB %q, using 0", v)
		} else {
			db = parsed
		}
	}

	rs, err := store.NewRedis(ctx, store.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to Redis project store at %s", addr)
	return rs, nil
}

// initializeBlobs uses S3 when S3_BUCKET is set, otherwise the in-memory fake.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_USE_PATH_STYLE=true,
// S3_PRESIGN_TTL (Go duration).
func initializeBlobs(ctx context.Context) (blob.Store, error) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Println("S3_BUCKET not set; using in-memory asset store")
		return blob.NewMemory(), nil
	}

	ttl := time.Duration(0)
	if v := os.Getenv("S3_PRESIGN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("Warning: invalid S3_PRESIGN_TTL %q, using default", v)
		} else {
			ttl = parsed
		}
	}

	s3c, err := blob.NewS3(ctx, blob.S3Config{
		Bucket:       bucket,
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		PresignTTL:   ttl,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Using S3 asset store, bucket %q", bucket)
	return s3c, nil
}

// initializeEvents connects the Kafka producer if KAFKA_BROKERS is configured.
// Events are optional; without brokers the workflows simply skip publishing.
func initializeEvents() events.Publisher {
	brokers := config.Brokers("KAFKA_BROKERS")
	if len(brokers) == 0 {
		log.Println("KAFKA_BROKERS not set; lifecycle events disabled")
		return nil
	}

	producer, err := events.NewProducer(brokers)
	if err != nil {
		log.Printf("Warning: failed to connect Kafka producer: %v (events disabled)", err)
		return nil
	}
	log.Printf("Publishing lifecycle events to Kafka brokers %v", brokers)
	return producer
}
