package service

import (
	"context"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/kafka-avro/consumer/internal/model"
)

type Decoder interface {
	Decode(data []byte) (any, error)
}

type Service struct {
	decoder Decoder
	log     *zap.Logger
}

func NewService(decoder Decoder, log *zap.Logger) *Service {
	return &Service{
		decoder: decoder,
		log:     log.Named("service"),
	}
}

// Handle decodes one record and logs it together with its topic and partition.
func (s *Service) Handle(_ context.Context, msg *sarama.ConsumerMessage) error {
	value, err := s.decoder.Decode(msg.Value)
	if err != nil {
		return err
	}

	decoded := model.Message{
		Key:   string(msg.Key),
		Value: value,
	}
	s.log.Info("message received",
		zap.String("topic", msg.Topic),
		zap.Int32("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.Any("message", decoded),
	)
	return nil
}
