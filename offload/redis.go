package offload

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RedisEngineName is the name of the redis pub/sub engine.
const RedisEngineName = "sse-redis"

// PubSub is a subscription to a redis channel.
type PubSub interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

// SubscribeFunc subscribes to channel on the redis server at server.
type SubscribeFunc func(ctx context.Context, server, channel string) (PubSub, error)

type RedisEngineParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// RedisEngine relays messages published on a redis channel as events.
// Markers pass `server=...,subscribe=...,buffer_size=...`, or just the
// channel name.
type RedisEngine struct {
	config    RedisConfig
	subscribe SubscribeFunc

	clientsLock sync.Mutex
	clients     map[string]*redis.Client

	log *zap.Logger
}

var _ Engine = (*RedisEngine)(nil)

func NewRedisEngine(config RedisConfig, log *zap.Logger) *RedisEngine {
	if config.Server == "" {
		config.Server = "127.0.0.1:6379"
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 100
	}

	e := &RedisEngine{
		config:  config,
		clients: make(map[string]*redis.Client),
		log:     log.Named("redis"),
	}
	e.subscribe = e.subscribeRedis

	return e
}

func NewLifecycleRedisEngine(params RedisEngineParams, lc fx.Lifecycle) EngineResult {
	engine := NewRedisEngine(params.Config.Redis, params.Log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return engine.Close()
		},
	})
	return AsEngine(engine)
}

func (e *RedisEngine) Name() string {
	return RedisEngineName
}

func (e *RedisEngine) Open(ctx context.Context, raw string) (Session, error) {
	args, err := ParseArgs(raw, "subscribe")
	if err != nil {
		return nil, err
	}

	channel := args["subscribe"]
	if channel == "" {
		return nil, fmt.Errorf("%w: missing pub/sub channel", ErrInvalidArgs)
	}

	server := e.config.Server
	if value := args["server"]; value != "" {
		server = value
	}

	bufferSize := e.config.BufferSize
	if value, ok := args["buffer_size"]; ok {
		bufferSize, err = strconv.Atoi(value)
		if err != nil || bufferSize <= 0 {
			return nil, fmt.Errorf("%w: buffer_size %q", ErrInvalidArgs, value)
		}
	}

	pubsub, err := e.subscribe(ctx, server, channel)
	if err != nil {
		return nil, err
	}

	e.log.Debug("subscribed",
		zap.String("server", server),
		zap.String("channel", channel),
	)

	return &redisSession{
		pubsub:     pubsub,
		bufferSize: bufferSize,
	}, nil
}

// Close closes all redis clients.
func (e *RedisEngine) Close() error {
	e.clientsLock.Lock()
	defer e.clientsLock.Unlock()

	var errs []error
	for server, client := range e.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing client for %s: %w", server, err))
		}
		delete(e.clients, server)
	}

	return errors.Join(errs...)
}

// client returns the cached client for server, creating it on first use.
func (e *RedisEngine) client(server string) *redis.Client {
	e.clientsLock.Lock()
	defer e.clientsLock.Unlock()

	client, ok := e.clients[server]
	if !ok {
		client = redis.NewClient(&redis.Options{Addr: server})
		e.clients[server] = client
	}

	return client
}

func (e *RedisEngine) subscribeRedis(ctx context.Context, server, channel string) (PubSub, error) {
	pubsub := e.client(server).Subscribe(ctx, channel)

	// wait for the subscription to be confirmed, so connection
	// failures surface before any response header is written
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrEngineUnavailable, server, err)
	}

	return pubsub, nil
}

type redisSession struct {
	pubsub     PubSub
	bufferSize int
}

func (s *redisSession) Run(ctx context.Context, w *EventWriter) error {
	messages := s.pubsub.Channel(redis.WithChannelSize(s.bufferSize))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := w.Send([]byte(msg.Payload)); err != nil {
				return err
			}
		}
	}
}

func (s *redisSession) Close() error {
	return s.pubsub.Close()
}
