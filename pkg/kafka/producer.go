package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const defaultClientID = "app-gateway"

var defaultKafkaVersion = sarama.V2_1_0_0

var (
	ErrNoBrokers       = errors.New("no brokers configured")
	ErrProducerClosed  = errors.New("producer is closed")
	ErrPingUnsupported = errors.New("ping is not supported without a broker client")
)

// Producer publishes single records and waits for the broker acknowledgment.
// It is safe for concurrent use: every call waits for its own record only.
type Producer interface {
	Connect() error
	PushMessage(ctx context.Context, key, value []byte, topic string) (partition int32, offset int64, err error)
	Ping(ctx context.Context, topic string) error
	Close() error
}

type metadataClient interface {
	RefreshMetadata(topics ...string) error
	Close() error
}

type connection struct {
	producer sarama.SyncProducer
	client   metadataClient
}

type dialFunc func(brokers []string, cfg *sarama.Config) (*connection, error)

type producer struct {
	brokers []string
	version string
	cfg     *sarama.Config
	dial    dialFunc
	log     *zap.Logger

	mu     sync.Mutex
	conn   *connection
	closed bool

	// counts callers holding conn; Close waits for them before tearing it down
	inFlight sync.WaitGroup
}

// NewProducer prepares a producer for brokers. No connection is made until
// Connect or the first PushMessage.
func NewProducer(brokers []string, opts ...Option) (Producer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = defaultClientID
	cfg.Version = defaultKafkaVersion
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true

	p := &producer{
		brokers: brokers,
		cfg:     cfg,
		dial:    dialBrokers,
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.version != "" {
		version, err := sarama.ParseKafkaVersion(p.version)
		if err != nil {
			return nil, fmt.Errorf("error parsing kafka version: %w", err)
		}

		p.cfg.Version = version
	}

	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid producer config: %w", err)
	}

	return p, nil
}

func dialBrokers(brokers []string, cfg *sarama.Config) (*connection, error) {
	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	sp, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return &connection{
		producer: sp,
		client:   client,
	}, nil
}

// Connect dials the brokers unless a connection already exists.
func (p *producer) Connect() error {
	_, err := p.connection()
	if err != nil {
		return err
	}

	p.inFlight.Done()

	return nil
}

// connection returns the live connection, dialing it on first use. On success
// the caller owns one inFlight slot and must release it with inFlight.Done.
func (p *producer) connection() (*connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrProducerClosed
	}

	if p.conn != nil {
		p.inFlight.Add(1)
		return p.conn, nil
	}

	conn, err := p.dial(p.brokers, p.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to brokers %v: %w", p.brokers, err)
	}

	p.log.Info("Kafka producer connected", zap.Strings("brokers", p.brokers))

	p.conn = conn
	p.inFlight.Add(1)

	return conn, nil
}

type pushResult struct {
	partition int32
	offset    int64
	err       error
}

// PushMessage sends one record and blocks until the broker acknowledges or
// rejects it, or ctx is done. A record abandoned on ctx expiry may still be
// delivered by the client.
func (p *producer) PushMessage(ctx context.Context, key, value []byte, topic string) (partition int32, offset int64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("publish not started: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	done := make(chan pushResult, 1)

	go func() {
		conn, err := p.connection()
		if err != nil {
			done <- pushResult{err: err}
			return
		}

		defer p.inFlight.Done()

		partition, offset, err := conn.producer.SendMessage(msg)
		done <- pushResult{partition: partition, offset: offset, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("no acknowledgment for topic %s: %w", topic, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return 0, 0, fmt.Errorf("failed to send message to topic %s: %w", topic, res.err)
		}

		return res.partition, res.offset, nil
	}
}

// Ping refreshes the metadata of topic, which fails when the brokers are
// unreachable or the topic does not exist.
func (p *producer) Ping(ctx context.Context, topic string) error {
	done := make(chan error, 1)

	go func() {
		conn, err := p.connection()
		if err != nil {
			done <- err
			return
		}

		defer p.inFlight.Done()

		if conn.client == nil {
			done <- ErrPingUnsupported
			return
		}

		done <- conn.client.RefreshMetadata(topic)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// Close refuses new sends, waits for the running ones to finish and then
// releases the connection.
func (p *producer) Close() error {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return nil
	}

	p.closed = true
	conn := p.conn
	p.conn = nil

	p.mu.Unlock()

	p.inFlight.Wait()

	if conn == nil {
		return nil
	}

	var err error

	if pErr := conn.producer.Close(); pErr != nil {
		err = fmt.Errorf("failed to close producer: %w", pErr)
	}

	// the client outlives a producer built on top of it
	if conn.client != nil {
		if cErr := conn.client.Close(); cErr != nil && !errors.Is(cErr, sarama.ErrClosedClient) {
			err = errors.Join(err, fmt.Errorf("failed to close client: %w", cErr))
		}
	}

	return err
}

// SetLogger routes the client library's internal log lines to log.
func SetLogger(log *zap.Logger) {
	std, err := zap.NewStdLogAt(log.Named("sarama"), zap.DebugLevel)
	if err != nil {
		return
	}

	sarama.Logger = std
}
