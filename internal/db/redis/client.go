// Package redis backs the relation cache with Redis or Valkey through
// rueidis. Only plain string keys are used; client-side caching stays off.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/saucenao/internal/db"
)

var _ db.Store = (*Store)(nil)

const (
	defaultClientName  = "saucenao-relcache"
	defaultDialTimeout = 3 * time.Second
	readyPollInterval  = 100 * time.Millisecond
)

// ErrNoAddress is returned by NewStore when Config.Addrs is empty.
var ErrNoAddress = errors.New("redis: at least one address is required")

// Config describes the cache server connection. Zero ClientName and
// DialTimeout fall back to defaults.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
}

func (c Config) clientOption() rueidis.ClientOption {
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	timeout := c.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return rueidis.ClientOption{
		InitAddress:  c.Addrs,
		Username:     c.Username,
		Password:     c.Password,
		SelectDB:     c.DB,
		ClientName:   name,
		Dialer:       net.Dialer{Timeout: timeout},
		DisableCache: true,
	}
}

// Store is the relation cache backend.
type Store struct {
	client rueidis.Client
}

// NewStore connects to the cache server.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, ErrNoAddress
	}
	client, err := rueidis.NewClient(cfg.clientOption())
	if err != nil {
		return nil, fmt.Errorf("redis: connect %v: %w", cfg.Addrs, err)
	}
	return &Store{client: client}, nil
}

// NewStoreForTest wraps an existing rueidis client, typically a mock.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}

// Ping checks that the server answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

// WaitForReady pings right away and then every readyPollInterval until the
// server answers. On timeout the last ping error is reported with the
// deadline.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		lastErr := s.Ping(ctx)
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("redis: not ready after %s: %w", timeout, errors.Join(ctx.Err(), lastErr))
		case <-ticker.C:
		}
	}
}

// Close releases the connections.
func (s *Store) Close() {
	s.client.Close()
}
