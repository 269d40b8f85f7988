// Package dbconn establishes the MongoDB connection with a bounded,
// configurable retry loop. Attempt limits and backoff are injected rather
// than kept in package state, so exhaustion behaves the same in tests as
// in production.
package dbconn

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Config controls the connection attempt loop.
type Config struct {
	URI         string
	MaxPoolSize uint64
	MinPoolSize uint64
	MaxAttempts int           // total attempts before giving up (min 1)
	Backoff     time.Duration // pause between attempts
}

// Manager connects to MongoDB with retries. The connect function is
// swappable for tests.
type Manager struct {
	cfg     Config
	log     *zap.Logger
	connect func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)
	pingFn  func(ctx context.Context, c *mongo.Client) error
}

// New builds a Manager with the real mongo driver behind it.
func New(cfg Config, logger *zap.Logger) *Manager {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Manager{
		cfg: cfg,
		log: logger,
		connect: func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			return mongo.Connect(ctx, opts)
		},
		pingFn: func(ctx context.Context, c *mongo.Client) error {
			return c.Ping(ctx, readpref.Primary())
		},
	}
}

// SetDialer overrides the connect and ping functions. Test use only.
func (m *Manager) SetDialer(
	connect func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error),
	ping func(ctx context.Context, c *mongo.Client) error,
) {
	m.connect = connect
	m.pingFn = ping
}

// Connect dials MongoDB, verifying the connection with a ping. It retries
// up to MaxAttempts with the configured backoff and returns the last error
// when every attempt fails.
func (m *Manager) Connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(m.cfg.URI)
	if m.cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(m.cfg.MaxPoolSize)
	}
	if m.cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(m.cfg.MinPoolSize)
	}

	var lastErr error
	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		client, err := m.connect(ctx, opts)
		if err == nil {
			if err = m.pingFn(ctx, client); err == nil {
				if attempt > 1 {
					m.log.Info("mongo connected after retry", zap.Int("attempt", attempt))
				}
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err
		m.log.Warn("mongo connect attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", m.cfg.MaxAttempts),
			zap.Error(err))

		if attempt == m.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.cfg.Backoff):
		}
	}
	return nil, fmt.Errorf("mongo unreachable after %d attempts: %w", m.cfg.MaxAttempts, lastErr)
}
