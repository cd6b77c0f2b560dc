// The worker consumes render requests from Kafka and runs the export round
// trip for each, so batch exports do not tie up the API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clipcaption/blob"
	"clipcaption/config"
	"clipcaption/events"
	"clipcaption/render"
	"clipcaption/store"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brokers := config.Brokers("KAFKA_BROKERS")
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS must be set for the render worker")
	}

	projects, err := connectStore(ctx)
	if err != nil {
		log.Fatalf("Failed to connect project store: %v", err)
	}
	defer projects.Close()

	blobs, err := connectBlobs(ctx)
	if err != nil {
		log.Fatalf("Failed to connect asset store: %v", err)
	}

	renderer := render.NewWorkflow(projects, blobs,
		config.EnvOr("RENDER_URL", "http://localhost:9300/render"), nil)

	handler := &events.TypedMessageHandler[events.RenderRequest]{
		Validate: func(msg *events.RenderRequest) bool {
			return msg.ProjectID != ""
		},
		Process: func(ctx context.Context, msg *events.RenderRequest) error {
			log.Printf("Rendering project %s", msg.ProjectID)
			url, err := renderer.Render(ctx, msg.ProjectID)
			if err != nil {
				return err
			}
			log.Printf("Rendered project %s -> %s", msg.ProjectID, url)
			return nil
		},
		AlwaysMark: true,
	}

	consumer, err := events.NewConsumer(events.ConsumerConfig{
		Brokers: brokers,
		Topic:   config.TopicRenderRequests,
		GroupID: config.EnvOr("KAFKA_GROUP_ID", "clipcaption-render-worker"),
		Handler: handler,
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka consumer: %v", err)
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("Failed to start Kafka consumer: %v", err)
	}

	<-ctx.Done()
	log.Println("Render worker shutting down")
}

// connectStore requires Redis; the worker runs in its own process and cannot
// share an in-memory store with the API server.
func connectStore(ctx context.Context) (*store.Redis, error) {
	addr := config.EnvOr("REDIS_ADDR", "localhost:6379")

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

func connectBlobs(ctx context.Context) (blob.Store, error) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Println("Warning: S3_BUCKET not set; using in-memory asset store (dev only)")
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

	return blob.NewS3(ctx, blob.S3Config{
		Bucket:       bucket,
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		PresignTTL:   ttl,
	})
}
