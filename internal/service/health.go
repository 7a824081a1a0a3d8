package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Finure/app-gateway/internal/apperrors"
)

type BrokerPinger interface {
	Ping(ctx context.Context, topic string) error
}

type HealthService struct {
	log     *zap.Logger
	broker  BrokerPinger
	topic   string
	timeout time.Duration
}

func NewHealthService(log *zap.Logger, broker BrokerPinger, topic string, timeout time.Duration) *HealthService {
	return &HealthService{
		log:     log,
		broker:  broker,
		topic:   topic,
		timeout: timeout,
	}
}

// CheckBroker refreshes the metadata of the target topic.
func (s *HealthService) CheckBroker(ctx context.Context) error {
	s.log.Debug("HealthService.CheckBroker()")

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.broker.Ping(ctx, s.topic); err != nil {
		return apperrors.Broker(err)
	}

	return nil
}
