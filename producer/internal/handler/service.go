package handler

import (
	"context"

	"github.com/Astemirdum/kafka-avro/producer/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type ProducerService interface {
	Send(ctx context.Context, msg model.Message) ([]model.RecordMetadata, error)
}
