package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"clipcaption/config"
)

// Producer publishes events through a synchronous Kafka producer.
type Producer struct {
	producer sarama.SyncProducer
}

// NewProducer connects to the given brokers.
func NewProducer(brokers []string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create Kafka producer: %w", err)
	}
	return &Producer{producer: producer}, nil
}

// PublishStatus emits a project status transition, keyed by project ID so one
// project's events stay ordered within a partition.
func (p *Producer) PublishStatus(ctx context.Context, ev StatusEvent) error {
	return p.send(config.TopicProjectStatus, ev.ProjectID, ev)
}

// PublishRenderRequest queues a render job for the worker.
func (p *Producer) PublishRenderRequest(ctx context.Context, req RenderRequest) error {
	return p.send(config.TopicRenderRequests, req.ProjectID, req)
}

func (p *Producer) send(topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	})
	return err
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}
