package service

import (
	"context"

	"github.com/Astemirdum/kafka-avro/producer/internal/model"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Encoder interface {
	Encode(id int, v any) ([]byte, error)
}

type Service struct {
	producer sarama.SyncProducer
	encoder  Encoder
	schemaID int
	topic    string
	log      *zap.Logger
}

func NewService(producer sarama.SyncProducer, encoder Encoder, schemaID int, topic string, log *zap.Logger) *Service {
	return &Service{
		producer: producer,
		encoder:  encoder,
		schemaID: schemaID,
		topic:    topic,
		log:      log.Named("service"),
	}
}

// Send encodes msg.Value with the registered schema and writes one record to the topic.
// Encode and broker errors are returned as is.
func (s *Service) Send(_ context.Context, msg model.Message) ([]model.RecordMetadata, error) {
	s.log.Debug("data", zap.String("key", msg.Key), zap.Any("value", msg.Value))

	value, err := s.encoder.Encode(s.schemaID, msg.Value)
	if err != nil {
		return nil, err
	}

	pm := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(msg.Key),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := s.producer.SendMessage(pm)
	if err != nil {
		return nil, err
	}

	result := []model.RecordMetadata{{
		TopicName:  s.topic,
		Partition:  partition,
		ErrorCode:  int16(sarama.ErrNoError),
		BaseOffset: offset,
	}}
	s.log.Info("result", zap.Any("result", result))
	return result, nil
}
