package push

import (
	"context"
	"errors"
	"sync"

	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/logger"
)

var (
	ErrQueueFull   = errors.New("push queue is full")
	ErrQueueClosed = errors.New("push queue is closed")
)

// Job is one pending push delivery.
type Job struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// Queue decouples push delivery from the write that produced the notification.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Close() error
}

// deliveryTimeout bounds one job when the gateway sets no deadline of its own.
const deliveryTimeout = config.MaxPushTimeout

func deliver(gateway Gateway, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	gateway.Send(ctx, job.Token, job.Title, job.Body, job.Data)
}

// MemoryQueue is a bounded in-process worker pool. Jobs still buffered when
// Close is called are delivered before Close returns.
type MemoryQueue struct {
	gateway Gateway
	jobs    chan Job
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewMemoryQueue(gateway Gateway, workers, buffer int) *MemoryQueue {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	q := &MemoryQueue{
		gateway: gateway,
		jobs:    make(chan Job, buffer),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *MemoryQueue) work() {
	defer q.wg.Done()
	for job := range q.jobs {
		deliver(q.gateway, job)
	}
}

// Enqueue never blocks. A full buffer drops the job with ErrQueueFull.
func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		logger.FromContext(ctx).Warn("push queue full, dropping job", DataNotificationID, job.Data[DataNotificationID])
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
