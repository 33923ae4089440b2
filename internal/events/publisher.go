package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	"github.com/aaravmahajanofficial/bookstore-api/internal/metrics"
	"github.com/segmentio/kafka-go"
)

var (
	ErrQueueFull       = errors.New("event queue is full")
	ErrPublisherClosed = errors.New("publisher is closed")
)

const (
	DefaultQueueSize = 256
	writeTimeout     = 10 * time.Second
)

type Publisher interface {
	Publish(ctx context.Context, key string, event Event) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type pending struct {
	msg       kafka.Message
	eventType Type
}

// AsyncPublisher hands events to a single background writer so callers never
// wait on the broker. Delivery order follows Publish order.
type AsyncPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	queue   chan pending
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewKafkaPublisher hashes on the message key so all events of one user land
// on the same partition and keep their order.
func NewKafkaPublisher(cfg config.Kafka) *AsyncPublisher {
	return NewPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}, cfg.QueueSize)
}

func NewPublisher(w MessageWriter, queueSize int) *AsyncPublisher {

	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}

	p := &AsyncPublisher{
		writer:  w,
		timeout: writeTimeout,
		queue:   make(chan pending, queueSize),
		done:    make(chan struct{}),
	}

	go p.run()

	return p
}

// Publish enqueues the event without blocking. Broker failures surface later
// through the log and the publish failure counter.
func (p *AsyncPublisher) Publish(_ context.Context, key string, event Event) error {

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	item := pending{
		eventType: event.Type,
		msg: kafka.Message{
			Key:   []byte(key),
			Value: data,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Type)},
			},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, ErrPublisherClosed)
	}

	select {
	case p.queue <- item:
		return nil
	default:
		return fmt.Errorf("failed to publish event %s: %w", event.Type, ErrQueueFull)
	}
}

func (p *AsyncPublisher) run() {

	defer close(p.done)

	for item := range p.queue {
		// a request that already returned must not cancel delivery
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.writer.WriteMessages(ctx, item.msg)
		cancel()

		if err != nil {
			slog.Error("Failed to publish event",
				slog.String("event_type", string(item.eventType)),
				slog.String("error", err.Error()),
			)
			metrics.RecordPublishFailure(string(item.eventType))
		}
	}
}

// Close stops accepting events, drains the queue and closes the writer.
func (p *AsyncPublisher) Close() error {

	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})

	<-p.done

	return p.writer.Close()
}
