package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Finure/app-gateway/internal/apperrors"
	"github.com/Finure/app-gateway/internal/model"
	"github.com/Finure/app-gateway/pkg/metrics"
)

type Publisher interface {
	PushMessage(ctx context.Context, key, value []byte, topic string) (partition int32, offset int64, err error)
}

type ApplicationService struct {
	log       *zap.Logger
	publisher Publisher
	topic     string
	timeout   time.Duration
}

func NewApplicationService(log *zap.Logger, publisher Publisher, topic string, timeout time.Duration) *ApplicationService {
	return &ApplicationService{
		log:       log,
		publisher: publisher,
		topic:     topic,
		timeout:   timeout,
	}
}

// Submit publishes record keyed by its id and returns once the broker has
// acknowledged it. Any publish failure is an apperrors.KindBroker error.
func (s *ApplicationService) Submit(ctx context.Context, record model.ApplicationRecord) error {
	payload, err := record.Payload()
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}

	s.log.Debug("received application", zap.ByteString("payload", payload))

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()

	partition, offset, err := s.publisher.PushMessage(ctx, record.Key(), payload, s.topic)

	metrics.PublishDuration.WithLabelValues(s.topic).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PublishedMessages.WithLabelValues(s.topic, metrics.ResultFailure).Inc()

		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no acknowledgment within %s: %w", s.timeout, err)
		}

		return apperrors.Broker(err)
	}

	metrics.PublishedMessages.WithLabelValues(s.topic, metrics.ResultSuccess).Inc()

	s.log.Debug("application published",
		zap.String("id", record.ID.String()),
		zap.String("topic", s.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}
