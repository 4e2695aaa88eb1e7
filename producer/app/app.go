package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/kafka-avro/pkg/kafka"
	"github.com/Astemirdum/kafka-avro/pkg/logger"
	"github.com/Astemirdum/kafka-avro/pkg/schemaregistry"
	"github.com/Astemirdum/kafka-avro/pkg/server"
	"github.com/Astemirdum/kafka-avro/producer/config"
	"github.com/Astemirdum/kafka-avro/producer/internal/handler"
	"github.com/Astemirdum/kafka-avro/producer/internal/service"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, config.ServiceName)
	defer func() { _ = log.Sync() }()

	registry, err := schemaregistry.New(cfg.SchemaRegistry,
		schemaregistry.WithCredentials(cfg.Kafka.Username, cfg.Kafka.Password),
		schemaregistry.WithLogger(log),
	)
	if err != nil {
		log.Fatal("schemaregistry.New", zap.Error(err))
	}
	schemaID, err := registry.Register(schemaregistry.ExampleSchema)
	if err != nil {
		log.Fatal("registry.Register", zap.Error(err))
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}

	svc := service.NewService(producer, registry, schemaID, cfg.Kafka.Topic, log)
	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", cfg.Server.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
