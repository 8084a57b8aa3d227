package push

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGateway struct {
	mu     sync.Mutex
	tokens []string
	block  chan struct{}
}

func (g *recordingGateway) Send(ctx context.Context, token, title, body string, data map[string]string) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokens = append(g.tokens, token)
}

func (g *recordingGateway) sent() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.tokens...)
}

func TestMemoryQueueDeliversBeforeClose(t *testing.T) {
	gw := &recordingGateway{}
	q := NewMemoryQueue(gw, 2, 10)

	for _, tok := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Token: tok}))
	}
	require.NoError(t, q.Close())

	assert.ElementsMatch(t, []string{"a", "b", "c"}, gw.sent())
	assert.ErrorIs(t, q.Enqueue(context.Background(), Job{Token: "d"}), ErrQueueClosed)
	assert.NoError(t, q.Close())
}

func TestMemoryQueueDropsWhenFull(t *testing.T) {
	gw := &recordingGateway{block: make(chan struct{})}
	q := NewMemoryQueue(gw, 1, 1)

	// The worker picks up the first job and blocks; the second fills the buffer.
	require.NoError(t, q.Enqueue(context.Background(), Job{Token: "a"}))
	var err error
	for i := 0; i < 3; i++ {
		if err = q.Enqueue(context.Background(), Job{Token: "x"}); err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrQueueFull)

	close(gw.block)
	require.NoError(t, q.Close())
}

func TestKafkaQueueHandleMessage(t *testing.T) {
	gw := &recordingGateway{}
	q := &KafkaQueue{gateway: gw}

	value, err := json.Marshal(Job{Token: "tok", Title: "t", Data: map[string]string{DataNotificationID: "n1"}})
	require.NoError(t, err)

	require.NoError(t, q.handleMessage(kafka.Message{Value: value}))
	assert.Equal(t, []string{"tok"}, gw.sent())

	assert.Error(t, q.handleMessage(kafka.Message{Value: []byte("{not json")}))
}

func TestKafkaQueueNewGroupReadsFromFirstOffset(t *testing.T) {
	q := NewKafkaQueue(config.QueueConfig{
		Brokers: []string{"127.0.0.1:1"},
		Topic:   "push-jobs",
		GroupID: "oomool-push",
	}, &recordingGateway{})
	defer q.Close()

	cfg := q.reader.Config()
	assert.Equal(t, kafka.FirstOffset, cfg.StartOffset)
	assert.Equal(t, "oomool-push", cfg.GroupID)
}
