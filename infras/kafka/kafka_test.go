package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tourism/config"
	otelMocks "tourism/infras/otel/mocks"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafkaGo.Message
	fetchErr  error
	fetches   int
	committed []kafkaGo.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fetches++

	if r.fetchErr != nil {
		return kafkaGo.Message{}, r.fetchErr
	}

	if len(r.messages) == 0 {
		r.mu.Unlock()
		<-ctx.Done()
		r.mu.Lock()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := r.messages[0]
	r.messages = r.messages[1:]

	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.committed = append(r.committed, msgs...)

	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	return nil
}

func newTestClient(backoff time.Duration) *kafkaClientImpl {
	return &kafkaClientImpl{
		config:  &config.Config{},
		otel:    otelMocks.NewOtel(),
		backoff: backoff,
	}
}

func TestNewWriterFlushesSingleMessagesQuickly(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	writer := newWriter(cfg, &kafkaGo.Transport{})

	assert.Equal(t, writeBatchTimeout, writer.BatchTimeout)
	assert.Less(t, writer.BatchTimeout, 100*time.Millisecond)
	assert.Equal(t, kafkaGo.RequireAll, writer.RequiredAcks)
}

func TestConsumeBacksOffOnFetchError(t *testing.T) {
	reader := &fakeReader{fetchErr: errors.New("reader closed")}
	client := newTestClient(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := client.consume(ctx, reader, "booking.status", func(context.Context, kafkaGo.Message) error {
		t.Fatal("handler must not run without a message")

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, reader.fetches)
	assert.True(t, reader.closed)
}

func TestConsumeRetriesHandlerBeforeCommit(t *testing.T) {
	msg := kafkaGo.Message{Topic: "booking.status", Key: []byte("booking-1"), Value: []byte(`{}`)}
	reader := &fakeReader{messages: []kafkaGo.Message{msg}}
	client := newTestClient(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := client.consume(ctx, reader, "booking.status", func(context.Context, kafkaGo.Message) error {
		calls++
		if calls < 3 {
			return errors.New("database unavailable")
		}

		cancel()

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []kafkaGo.Message{msg}, reader.committed)
}

func TestDecodeKafkaMessage(t *testing.T) {
	message := Message{Key: "booking-1", Value: map[string]string{"status": "paid"}}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)

	decoded, err := DecodeKafkaMessage[map[string]string](msg)
	require.NoError(t, err)
	assert.Equal(t, "paid", decoded["status"])

	_, err = DecodeKafkaMessage[map[string]string](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
