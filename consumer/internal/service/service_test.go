package service_test

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/riferrei/srclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Astemirdum/kafka-avro/consumer/internal/model"
	"github.com/Astemirdum/kafka-avro/consumer/internal/service"
	"github.com/Astemirdum/kafka-avro/pkg/schemaregistry"
)

func newRegistry(t *testing.T, client schemaregistry.Client) *schemaregistry.Registry {
	t.Helper()
	reg, err := schemaregistry.New(schemaregistry.Config{URL: "mock"}, schemaregistry.WithClient(client))
	require.NoError(t, err)
	return reg
}

func TestService_Handle(t *testing.T) {
	t.Parallel()
	client := srclient.CreateMockSchemaRegistryClient("mock")

	producerSide := newRegistry(t, client)
	id, err := producerSide.Register(schemaregistry.ExampleSchema)
	require.NoError(t, err)
	value, err := producerSide.Encode(id, map[string]any{"test": "hello"})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	svc := service.NewService(newRegistry(t, client), zap.New(core))

	err = svc.Handle(context.Background(), &sarama.ConsumerMessage{
		Topic:     "examples",
		Partition: 3,
		Offset:    7,
		Key:       []byte("key-1"),
		Value:     value,
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("message received").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "examples", fields["topic"])
	assert.Equal(t, int32(3), fields["partition"])
	assert.Equal(t, int64(7), fields["offset"])
	assert.Equal(t, model.Message{Key: "key-1", Value: map[string]any{"test": "hello"}}, fields["message"])
}

func TestService_HandleDecodeError(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	svc := service.NewService(newRegistry(t, srclient.CreateMockSchemaRegistryClient("mock")), zap.New(core))

	err := svc.Handle(context.Background(), &sarama.ConsumerMessage{
		Topic: "examples",
		Key:   []byte("k"),
		Value: []byte("plain text"),
	})
	require.ErrorIs(t, err, schemaregistry.ErrInvalidMessage)
	assert.Zero(t, logs.Len())
}
