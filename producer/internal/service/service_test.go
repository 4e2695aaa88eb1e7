package service_test

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/riferrei/srclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/kafka-avro/pkg/schemaregistry"
	"github.com/Astemirdum/kafka-avro/producer/internal/model"
	"github.com/Astemirdum/kafka-avro/producer/internal/service"
)

const topic = "examples"

func setup(t *testing.T) (*mocks.SyncProducer, *schemaregistry.Registry, int) {
	t.Helper()
	reg, err := schemaregistry.New(schemaregistry.Config{URL: "mock"},
		schemaregistry.WithClient(srclient.CreateMockSchemaRegistryClient("mock")))
	require.NoError(t, err)
	id, err := reg.Register(schemaregistry.ExampleSchema)
	require.NoError(t, err)

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	t.Cleanup(func() { _ = producer.Close() })
	return producer, reg, id
}

func TestService_Send(t *testing.T) {
	t.Parallel()
	producer, reg, id := setup(t)

	var sent []byte
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		sent = val
		return nil
	})

	svc := service.NewService(producer, reg, id, topic, zap.NewNop())
	msg := model.Message{Key: "key-1", Value: map[string]any{"test": "hello"}}
	res, err := svc.Send(context.Background(), msg)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, topic, res[0].TopicName)
	assert.Equal(t, int16(0), res[0].ErrorCode)

	decoded, err := reg.Decode(sent)
	require.NoError(t, err)
	assert.Equal(t, msg.Value, decoded)
}

func TestService_SendBrokerError(t *testing.T) {
	t.Parallel()
	producer, reg, id := setup(t)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	svc := service.NewService(producer, reg, id, topic, zap.NewNop())
	res, err := svc.Send(context.Background(), model.Message{Key: "k", Value: map[string]any{"test": "v"}})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.Nil(t, res)
}

func TestService_SendEncodeError(t *testing.T) {
	t.Parallel()
	producer, reg, id := setup(t)

	svc := service.NewService(producer, reg, id, topic, zap.NewNop())
	_, err := svc.Send(context.Background(), model.Message{Key: "k", Value: map[string]any{"other": "v"}})
	require.Error(t, err)
}
