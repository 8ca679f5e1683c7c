package commands

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// useTempConfig points viper at a config file in a fresh directory. Tests
// that call it share viper's global state and must not run in parallel.
func useTempConfig(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(path)

	return path
}
