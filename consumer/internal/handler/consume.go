package handler

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type handle func(ctx context.Context, msg *sarama.ConsumerMessage) error

// Consumer feeds claimed records to handle one at a time per partition.
// A record that fails is logged and marked, so it does not block the partition.
type Consumer struct {
	handler handle
	log     *zap.Logger
}

func NewConsumer(h handle, log *zap.Logger) *Consumer {
	return &Consumer{
		handler: h,
		log:     log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(session sarama.ConsumerGroupSession) error {
	consumer.log.Info("partitions assigned", zap.Any("claims", session.Claims()))
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			if err := consumer.handler(session.Context(), message); err != nil {
				consumer.log.Error("consumer.handler",
					zap.Error(err),
					zap.String("topic", message.Topic),
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset))
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
