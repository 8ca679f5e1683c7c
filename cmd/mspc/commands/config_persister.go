package commands

import (
	"fmt"
	"os"
	"sync"
)

// ConfigPersister writes rotated refresh tokens back to the config file when
// no token store is configured.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateRefreshToken replaces refresh_token in the config file.
func (p *ConfigPersister) UpdateRefreshToken(refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	if config.RefreshToken == refreshToken {
		return nil
	}

	config.RefreshToken = refreshToken

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("saving rotated refresh token: %w", err)
	}

	return nil
}

// OnRotated adapts UpdateRefreshToken to msapi.Config.OnRefreshTokenRotated.
// Failures are reported on stderr; the command that rotated the token keeps
// running.
func (p *ConfigPersister) OnRotated(refreshToken string) {
	err := p.UpdateRefreshToken(refreshToken)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
