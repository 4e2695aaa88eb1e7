package schemaregistry

import (
	"encoding/binary"
	"strings"
	"sync"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/pkg/errors"
	"github.com/riferrei/srclient"
	"go.uber.org/zap"
)

const (
	magicByte  byte = 0
	prefixSize      = 5
)

var (
	ErrInvalidMessage = errors.New("invalid schema registry message")
	ErrUnknownSchema  = errors.New("schema is not registered")
)

type Config struct {
	URL     string        `envconfig:"KAFKA_SCHEMA_REGISTRY_URI" required:"true" validate:"required,url"`
	Subject string        `envconfig:"KAFKA_SCHEMA_SUBJECT"`
	Timeout time.Duration `envconfig:"KAFKA_SCHEMA_REGISTRY_TIMEOUT" default:"5s"`
}

// Client is the part of the schema registry API the Registry needs.
// srclient.ISchemaRegistryClient and srclient.MockSchemaRegistryClient both satisfy it.
type Client interface {
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	GetSchema(schemaID int) (*srclient.Schema, error)
}

type options struct {
	client   Client
	username string
	password string
	log      *zap.Logger
}

type Option func(*options)

// WithCredentials enables basic auth against the registry.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithClient replaces the HTTP client, mostly for srclient.CreateMockSchemaRegistryClient.
func WithClient(c Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Registry registers Avro schemas and encodes/decodes payloads in the
// Confluent wire format.
type Registry struct {
	client  Client
	subject string
	log     *zap.Logger

	mu         sync.RWMutex
	registered map[string]int     // subject + schema text -> id
	schemas    map[int]avro.Schema // id -> parsed schema
}

func New(cfg Config, opts ...Option) (*Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	if o.client == nil {
		if cfg.URL == "" {
			return nil, errors.New("schema registry url is empty")
		}
		c := srclient.CreateSchemaRegistryClient(strings.TrimSuffix(cfg.URL, "/"))
		if o.username != "" {
			c.SetCredentials(o.username, o.password)
		}
		if cfg.Timeout > 0 {
			c.SetTimeout(cfg.Timeout)
		}
		o.client = c
	}

	return &Registry{
		client:     o.client,
		subject:    cfg.Subject,
		log:        o.log.Named("schemaregistry"),
		registered: make(map[string]int),
		schemas:    make(map[int]avro.Schema),
	}, nil
}

// Register registers an Avro schema and returns its id. The subject is the configured one,
// or the schema full name (namespace.name) when none is configured.
// Registering the same schema again returns the same id.
func (r *Registry) Register(schema string) (int, error) {
	parsed, err := avro.Parse(schema)
	if err != nil {
		return 0, errors.Wrap(err, "parse avro schema")
	}

	subject := r.subject
	if subject == "" {
		named, ok := parsed.(avro.NamedSchema)
		if !ok {
			return 0, errors.New("subject is required for unnamed schema")
		}
		subject = named.FullName()
	}

	key := subject + "\x00" + schema
	r.mu.RLock()
	id, ok := r.registered[key]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	created, err := r.client.CreateSchema(subject, schema, srclient.Avro)
	if err != nil {
		return 0, errors.Wrapf(err, "register schema under subject %s", subject)
	}
	id = created.ID()

	r.mu.Lock()
	r.registered[key] = id
	r.schemas[id] = parsed
	r.mu.Unlock()

	r.log.Info("schema registered",
		zap.String("subject", subject),
		zap.Int("id", id),
		zap.Int("version", created.Version()))
	return id, nil
}

// Encode serializes v with the schema registered under id.
//
//	+--------------------+--------------------+----------------------+
//	| magic byte(1 byte) | schema id(4 bytes) | AVRO encoded message |
//	+--------------------+--------------------+----------------------+
func (r *Registry) Encode(id int, v any) ([]byte, error) {
	schema, err := r.schema(id)
	if err != nil {
		return nil, err
	}

	payload, err := avro.Marshal(schema, v)
	if err != nil {
		return nil, errors.Wrapf(err, "avro marshal for schema [%d]", id)
	}
	return append(encodePrefix(id), payload...), nil
}

// Decode reads the schema id from the message prefix, resolves the schema
// and returns the generic decoded value.
func (r *Registry) Decode(data []byte) (any, error) {
	id, err := decodePrefix(data)
	if err != nil {
		return nil, err
	}
	schema, err := r.schema(id)
	if err != nil {
		return nil, err
	}

	var v any
	if err = avro.Unmarshal(schema, data[prefixSize:], &v); err != nil {
		return nil, errors.Wrapf(err, "avro unmarshal for schema [%d]", id)
	}
	return v, nil
}

func (r *Registry) schema(id int) (avro.Schema, error) {
	r.mu.RLock()
	s, ok := r.schemas[id]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	fetched, err := r.client.GetSchema(id)
	if err != nil {
		return nil, errors.Wrapf(err, "get schema [%d]", id)
	}
	if fetched == nil {
		return nil, errors.Wrapf(ErrUnknownSchema, "schema [%d]", id)
	}
	s, err = avro.Parse(fetched.Schema())
	if err != nil {
		return nil, errors.Wrapf(err, "parse schema [%d]", id)
	}

	r.mu.Lock()
	r.schemas[id] = s
	r.mu.Unlock()
	return s, nil
}

func encodePrefix(id int) []byte {
	byt := make([]byte, prefixSize)
	byt[0] = magicByte
	binary.BigEndian.PutUint32(byt[1:], uint32(id))
	return byt
}

func decodePrefix(byt []byte) (int, error) {
	if len(byt) < prefixSize {
		return 0, errors.Wrapf(ErrInvalidMessage, "message length %d", len(byt))
	}
	if byt[0] != magicByte {
		return 0, errors.Wrapf(ErrInvalidMessage, "unknown magic byte %d", byt[0])
	}
	return int(binary.BigEndian.Uint32(byt[1:prefixSize])), nil
}
