package persist

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// StoreType represents the refresh token backend.
type StoreType string

const (
	// StoreTypeFile keeps tokens in a local YAML file.
	StoreTypeFile StoreType = "file"

	// StoreTypeNATS keeps tokens in a NATS JetStream key-value bucket.
	StoreTypeNATS StoreType = "nats"

	// StoreTypeNone disables persistence.
	StoreTypeNone StoreType = "none"
)

// Store is a refresh token store that owns resources.
type Store interface {
	msapi.RefreshTokenStore
	Delete(ctx context.Context, key string) error
	Close() error
}

// StoreConfig selects and configures a backend.
type StoreConfig struct {
	Type StoreType

	// FilePath is the token file for StoreTypeFile.
	FilePath string

	// NATS configures StoreTypeNATS.
	NATS *NATSConfig
}

// NewStore creates the configured store. StoreTypeNone and an empty type
// return nil without error.
func NewStore(ctx context.Context, config *StoreConfig) (Store, error) {
	if config == nil {
		return nil, nil //nolint:nilnil // no store configured
	}

	switch config.Type {
	case StoreTypeNone, "":
		return nil, nil //nolint:nilnil // persistence disabled

	case StoreTypeFile:
		return NewFileStore(config.FilePath), nil

	case StoreTypeNATS:
		if config.NATS == nil || config.NATS.URL == "" {
			return nil, constants.ErrNATSURLRequired
		}

		return NewNATSStore(ctx, config.NATS)

	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedTokenStore, config.Type)
	}
}

// Close is a no-op; the file is not held open between calls.
func (s *FileStore) Close() error {
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*NATSStore)(nil)
)
