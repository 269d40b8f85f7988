package dbconn

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func TestConnect_ExhaustsAttempts(t *testing.T) {
	m := New(Config{URI: "mongodb://localhost:1", MaxAttempts: 3, Backoff: time.Millisecond}, zap.NewNop())

	calls := 0
	dialErr := errors.New("dial refused")
	m.SetDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			calls++
			return nil, dialErr
		},
		nil,
	)

	_, err := m.Connect(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, dialErr) {
		t.Errorf("expected last dial error in chain, got %v", err)
	}
	if calls != 3 {
		t.Errorf("attempts: got %d, want 3", calls)
	}
}

func TestConnect_SucceedsAfterRetry(t *testing.T) {
	m := New(Config{URI: "mongodb://localhost:1", MaxAttempts: 5, Backoff: time.Millisecond}, zap.NewNop())

	calls := 0
	m.SetDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("dial refused")
			}
			return &mongo.Client{}, nil
		},
		func(ctx context.Context, c *mongo.Client) error { return nil },
	)

	if _, err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("attempts: got %d, want 3", calls)
	}
}

func TestConnect_ContextCancelStopsRetry(t *testing.T) {
	m := New(Config{URI: "mongodb://localhost:1", MaxAttempts: 100, Backoff: time.Hour}, zap.NewNop())
	m.SetDialer(
		func(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
			return nil, errors.New("dial refused")
		},
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := m.Connect(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNew_ClampsAttempts(t *testing.T) {
	m := New(Config{MaxAttempts: 0}, zap.NewNop())
	if m.cfg.MaxAttempts != 1 {
		t.Errorf("MaxAttempts: got %d, want 1", m.cfg.MaxAttempts)
	}
}
