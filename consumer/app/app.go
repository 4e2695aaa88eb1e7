package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/kafka-avro/consumer/config"
	"github.com/Astemirdum/kafka-avro/consumer/internal/handler"
	"github.com/Astemirdum/kafka-avro/consumer/internal/service"
	"github.com/Astemirdum/kafka-avro/pkg/kafka"
	"github.com/Astemirdum/kafka-avro/pkg/logger"
	"github.com/Astemirdum/kafka-avro/pkg/schemaregistry"
	"github.com/Astemirdum/kafka-avro/pkg/server"
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
	if _, err = registry.Register(schemaregistry.ExampleSchema); err != nil {
		log.Fatal("registry.Register", zap.Error(err))
	}

	group, err := kafka.NewConsumer(cfg.Kafka, cfg.Group)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}

	svc := service.NewService(registry, log)
	srv := server.NewServer(cfg.Server, handler.NewRouter())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("consumer start", zap.String("topic", cfg.Kafka.Topic), zap.String("group", cfg.Group))
		return kafka.Consume(ctx, group, handler.NewConsumer(svc.Handle, log), log, cfg.Kafka.Topic)
	})
	g.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", cfg.Server.Addr()))
		return srv.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Stop(closeCtx); err != nil {
			log.DPanic("srv.Stop", zap.Error(err))
		}
		return group.Close()
	})

	if err = g.Wait(); err != nil {
		log.Error("consumer stopped", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
