package kafka

import (
	"crypto/tls"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Balancer int

const (
	Hash Balancer = iota
	RoundRobin
	Random
)

type RequiredAcks int16

const (
	RequireNone RequiredAcks = RequiredAcks(sarama.NoResponse)
	RequireOne  RequiredAcks = RequiredAcks(sarama.WaitForLocal)
	RequireAll  RequiredAcks = RequiredAcks(sarama.WaitForAll)
)

type Option func(p *producer)

// WithBalancer selects how messages are spread over partitions. Hash keeps
// every message with the same key on the same partition.
func WithBalancer(b Balancer) Option {
	return func(p *producer) {
		switch b {
		case RoundRobin:
			p.cfg.Producer.Partitioner = sarama.NewRoundRobinPartitioner
		case Random:
			p.cfg.Producer.Partitioner = sarama.NewRandomPartitioner
		default:
			p.cfg.Producer.Partitioner = sarama.NewHashPartitioner
		}
	}
}

func WithRequiredAcks(acks RequiredAcks) Option {
	return func(p *producer) {
		p.cfg.Producer.RequiredAcks = sarama.RequiredAcks(acks)
	}
}

func WithClientID(id string) Option {
	return func(p *producer) {
		if id != "" {
			p.cfg.ClientID = id
		}
	}
}

// WithVersion sets the protocol version, e.g. "3.6.0". Parsed by NewProducer.
func WithVersion(version string) Option {
	return func(p *producer) {
		p.version = version
	}
}

// WithTLS enables TLS on every broker connection. A config carrying a client
// certificate turns it into mutual TLS.
func WithTLS(cfg *tls.Config) Option {
	return func(p *producer) {
		if cfg == nil {
			return
		}

		p.cfg.Net.TLS.Enable = true
		p.cfg.Net.TLS.Config = cfg
	}
}

// WithTimeout bounds dialing, socket reads and writes and the broker side
// acknowledgment wait.
func WithTimeout(d time.Duration) Option {
	return func(p *producer) {
		if d <= 0 {
			return
		}

		p.cfg.Net.DialTimeout = d
		p.cfg.Net.ReadTimeout = d
		p.cfg.Net.WriteTimeout = d
		p.cfg.Producer.Timeout = d
	}
}

// WithRetry configures the client library's own resend policy. Zero disables it.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(p *producer) {
		if maxRetries < 0 {
			return
		}

		p.cfg.Producer.Retry.Max = maxRetries
		if backoff > 0 {
			p.cfg.Producer.Retry.Backoff = backoff
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(p *producer) {
		if log != nil {
			p.log = log
		}
	}
}

// WithSyncProducer makes the producer publish through sp instead of dialing
// the brokers itself. Ping is not available in this mode.
func WithSyncProducer(sp sarama.SyncProducer) Option {
	return func(p *producer) {
		p.dial = func([]string, *sarama.Config) (*connection, error) {
			return &connection{producer: sp}, nil
		}
	}
}
