package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// KafkaQueue publishes jobs to a topic and, once Start is called, consumes
// them and hands them to the gateway. Several API instances can share one
// consumer group.
type KafkaQueue struct {
	writer  *kafka.Writer
	reader  *kafka.Reader
	gateway Gateway

	closeReader sync.Once
}

func NewKafkaQueue(cfg config.QueueConfig, gateway Gateway) *KafkaQueue {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("failed to publish push jobs", "count", len(messages), "error", err)
			}
		},
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	return &KafkaQueue{writer: writer, reader: reader, gateway: gateway}
}

func (q *KafkaQueue) Enqueue(ctx context.Context, job Job) error {
	value, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode push job: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(job.Data[DataNotificationID]),
		Value: value,
		Time:  time.Now(),
	}
	if err := q.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish push job: %w", err)
	}
	return nil
}

// Start consumes until ctx is cancelled.
func (q *KafkaQueue) Start(ctx context.Context) error {
	logger.Info("starting push consumer", "topic", q.reader.Config().Topic)
	defer q.stopReader()

	for {
		message, err := q.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				logger.Info("stopping push consumer")
				return nil
			}
			logger.Error("failed to read push job", "error", err)
			continue
		}

		if err := q.handleMessage(message); err != nil {
			logger.Error("failed to process push job", "offset", message.Offset, "error", err)
		}
	}
}

func (q *KafkaQueue) handleMessage(message kafka.Message) error {
	job, err := decodeJob(message.Value)
	if err != nil {
		return err
	}
	deliver(q.gateway, job)
	return nil
}

func decodeJob(value []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(value, &job); err != nil {
		return Job{}, fmt.Errorf("failed to decode push job: %w", err)
	}
	return job, nil
}

func (q *KafkaQueue) stopReader() {
	q.closeReader.Do(func() {
		if err := q.reader.Close(); err != nil {
			logger.Warn("failed to close push consumer", "error", err)
		}
	})
}

func (q *KafkaQueue) Close() error {
	q.stopReader()
	return q.writer.Close()
}
