package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/Astemirdum/kafka-avro/pkg/kafka"
	"github.com/Astemirdum/kafka-avro/pkg/logger"
	"github.com/Astemirdum/kafka-avro/pkg/schemaregistry"
	"github.com/Astemirdum/kafka-avro/pkg/server"
	"github.com/Astemirdum/kafka-avro/pkg/validate"
)

const ServiceName = "kafka-consumer"

type Config struct {
	Server         server.Config
	Kafka          kafka.Config
	Group          string `envconfig:"KAFKA_GROUP" required:"true" validate:"required"`
	SchemaRegistry schemaregistry.Config
	Log            logger.Log
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment and exits when it is incomplete.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
	})

	return cfg
}

func Load(ops ...Option) (*Config, error) {
	config := &Config{
		Server: server.Config{
			Host:         "0.0.0.0",
			Port:         "8081",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
	for _, op := range ops {
		op(config)
	}
	if err := envconfig.Process("", config); err != nil {
		return nil, errors.Wrap(err, "envconfig")
	}
	if config.Kafka.ClientID == "" {
		config.Kafka.ClientID = ServiceName
	}
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return config, nil
}
