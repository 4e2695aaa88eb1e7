package kafka

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	MechanismNone        = "none"
	MechanismPlain       = "PLAIN"
	MechanismScramSHA256 = "SCRAM-SHA-256"
	MechanismScramSHA512 = "SCRAM-SHA-512"
)

type Config struct {
	Addrs     []string `envconfig:"KAFKA_BROKER_URI" required:"true" validate:"required,dive,required"`
	ClientID  string   `envconfig:"KAFKA_CLIENT_ID"`
	Username  string   `envconfig:"KAFKA_USERNAME" validate:"required_unless=Mechanism none"`
	Password  string   `envconfig:"KAFKA_PASSWORD" validate:"required_unless=Mechanism none"`
	Mechanism string   `envconfig:"KAFKA_SASL_MECHANISM" default:"PLAIN" validate:"oneof=none PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
	TLS       bool     `envconfig:"KAFKA_TLS" default:"true"`
	Version   string   `envconfig:"KAFKA_VERSION"`
	Topic     string   `envconfig:"KAFKA_TOPIC" required:"true" validate:"required"`
}

// NewSaramaConfig translates Config into a sarama config shared by producers and consumers.
func NewSaramaConfig(cfg Config) (*sarama.Config, error) {
	sc := sarama.NewConfig()
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	if v := cfg.Version; v != "" {
		version, err := sarama.ParseKafkaVersion(v)
		if err != nil {
			return nil, errors.Wrapf(err, "kafka version %s", v)
		}
		sc.Version = version
	}

	if cfg.TLS {
		sc.Net.TLS.Enable = true
		sc.Net.TLS.Config = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	switch strings.ToUpper(cfg.Mechanism) {
	case "", strings.ToUpper(MechanismNone):
	case MechanismPlain:
		sc.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	case MechanismScramSHA256:
		sc.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		sc.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient { return &scramClient{HashGeneratorFcn: SHA256} }
	case MechanismScramSHA512:
		sc.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
		sc.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient { return &scramClient{HashGeneratorFcn: SHA512} }
	default:
		return nil, errors.Errorf("sasl mechanism %s not supported", cfg.Mechanism)
	}
	if sc.Net.SASL.Mechanism != "" {
		sc.Net.SASL.Enable = true
		sc.Net.SASL.User = cfg.Username
		sc.Net.SASL.Password = cfg.Password
	}
	return sc, nil
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg, err := NewSaramaConfig(cfg)
	if err != nil {
		return nil, err
	}

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg, err := NewSaramaConfig(cfg)
	if err != nil {
		return nil, err
	}

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Return.Errors = true

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume joins the group and keeps rejoining after every rebalance until ctx is done
// or the group is closed.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) error {
	go func() {
		for err := range group.Errors() {
			log.Error("consumer group", zap.Error(err))
		}
	}()

	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "consumer group consume")
		}
		if ctx.Err() != nil {
			return nil
		}
		log.Debug("consumer group rebalanced", zap.Strings("topics", topics))
	}
}
