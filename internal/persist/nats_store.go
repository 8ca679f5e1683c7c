package persist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSConfig configures a NATSStore.
type NATSConfig struct {
	// URL of the NATS server, e.g. nats://127.0.0.1:4222. Required.
	URL string
	// Bucket is the key-value bucket. Defaults to mspc_refresh_tokens.
	Bucket string
	// Name identifies the connection on the server.
	Name string
	// Options are passed to nats.Connect.
	Options []nats.Option
}

// NATSStore keeps refresh tokens in a JetStream key-value bucket so that
// several processes share the latest rotated token.
type NATSStore struct {
	conn *nats.Conn
	kv   jetstream.KeyValue
}

// NewNATSStore connects to NATS and opens, or creates, the bucket.
func NewNATSStore(ctx context.Context, config *NATSConfig) (*NATSStore, error) {
	if config == nil || config.URL == "" {
		return nil, constants.ErrNATSURLRequired
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	options := config.Options
	if config.Name != "" {
		options = append([]nats.Option{nats.Name(config.Name)}, options...)
	}

	conn, err := nats.Connect(config.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	stream, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := stream.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "OAuth2 refresh tokens",
		History:     1,
	})
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening key-value bucket %s: %w", bucket, err)
	}

	return &NATSStore{
		conn: conn,
		kv:   kv,
	}, nil
}

// LoadRefreshToken implements msapi.RefreshTokenStore. A missing key yields "".
func (s *NATSStore) LoadRefreshToken(ctx context.Context, key string) (string, error) {
	entry, err := s.kv.Get(ctx, kvKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("loading refresh token from NATS: %w", err)
	}

	return string(entry.Value()), nil
}

// SaveRefreshToken implements msapi.RefreshTokenStore.
func (s *NATSStore) SaveRefreshToken(ctx context.Context, key, refreshToken string) error {
	_, err := s.kv.Put(ctx, kvKey(key), []byte(refreshToken))
	if err != nil {
		return fmt.Errorf("saving refresh token to NATS: %w", err)
	}

	return nil
}

// Delete removes key from the bucket.
func (s *NATSStore) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, kvKey(key))
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("deleting refresh token from NATS: %w", err)
	}

	return nil
}

// Close drains the connection.
func (s *NATSStore) Close() error {
	err := s.conn.Drain()
	if err != nil {
		return fmt.Errorf("closing NATS connection: %w", err)
	}

	return nil
}

// kvKey maps a store key onto the characters JetStream accepts in keys.
func kvKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '=', r == '.', r == '/':
			return r
		default:
			return '_'
		}
	}, key)
}

var _ msapi.RefreshTokenStore = (*NATSStore)(nil)
