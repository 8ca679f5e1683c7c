package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/persist"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msclient"
	"github.com/spf13/viper"
)

const userAgent = "mspc/1.0"

// clientSetup is a library config plus the store it references.
type clientSetup struct {
	config *msapi.Config
	store  persist.Store
}

// Close releases the token store.
func (s *clientSetup) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// buildClientSetup turns the CLI configuration into an msapi.Config.
//
//nolint:cyclop
func buildClientSetup(ctx context.Context, config *Config) (*clientSetup, error) {
	if config.Tenant == "" || config.ClientID == "" {
		return nil, ErrNotLoggedIn
	}

	if config.ClientSecret == "" {
		return nil, ErrClientSecretMissing
	}

	msConfig := &msapi.Config{
		TenantDomain: config.Tenant,
		OAuthVersion: msapi.OAuthVersion(config.OAuthVersion),
		Resource:     config.Resource,
		UserAgent:    userAgent,
	}

	if config.Timeout != "" {
		timeout, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}

		msConfig.Timeout = timeout
	}

	if config.Conflict.Enabled {
		policy := &msapi.ConflictPolicy{
			Enabled:    true,
			MaxRetries: config.Conflict.MaxRetries,
		}

		if config.Conflict.Delay != "" {
			delay, err := time.ParseDuration(config.Conflict.Delay)
			if err != nil {
				return nil, fmt.Errorf("invalid conflict delay: %w", err)
			}

			policy.Delay = delay
		}

		msConfig.Conflict = policy
	}

	store, err := openTokenStore(ctx, config)
	if err != nil {
		return nil, err
	}

	if store != nil {
		msConfig.RefreshTokenStore = store
	} else if config.RefreshToken != "" {
		msConfig.OnRefreshTokenRotated = NewConfigPersister().OnRotated
	}

	if config.RefreshToken != "" || store != nil {
		msConfig.Authentication = msapi.RefreshTokenCredentials{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RefreshToken: config.RefreshToken,
		}
	} else {
		msConfig.Authentication = msapi.ClientCredentials{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
		}
	}

	if viper.GetBool("verbose") {
		logger := msapi.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))

		chain := msapi.NewInterceptorChain()
		chain.AddRequestInterceptor(msapi.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(msapi.LoggingResponseInterceptor(logger))

		msConfig.Logger = logger
		msConfig.Interceptors = chain
	}

	return &clientSetup{config: msConfig, store: store}, nil
}

func openTokenStore(ctx context.Context, config *Config) (persist.Store, error) {
	storeConfig := &persist.StoreConfig{
		Type: persist.StoreType(config.TokenStore),
		NATS: &persist.NATSConfig{
			URL:    config.NATSURL,
			Bucket: config.NATSBucket,
			Name:   "mspc",
		},
	}

	if storeConfig.Type == persist.StoreTypeFile {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}

		storeConfig.FilePath = filepath.Join(dir, constants.DefaultTokenFileName)
	}

	store, err := persist.NewStore(ctx, storeConfig)
	if err != nil {
		return nil, fmt.Errorf("opening token store: %w", err)
	}

	return store, nil
}

// withPartnerCenter builds a Partner Center client for the duration of fn.
func withPartnerCenter(ctx context.Context, fn func(pc msapi.PartnerCenter) error) error {
	setup, err := buildClientSetup(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer setup.Close()

	pc, err := msclient.NewPartnerCenter(ctx, setup.config)
	if err != nil {
		return err
	}

	return fn(pc)
}

// withGraph builds a Graph client for the duration of fn.
func withGraph(ctx context.Context, fn func(graph msapi.Graph) error) error {
	setup, err := buildClientSetup(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer setup.Close()

	graph, err := msclient.NewGraph(ctx, setup.config)
	if err != nil {
		return err
	}

	return fn(graph)
}
