package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"gopkg.in/yaml.v3"
)

// tokenFile is the on-disk layout of a FileStore.
type tokenFile struct {
	Tokens map[string]*tokenEntry `yaml:"tokens"`
}

type tokenEntry struct {
	RefreshToken string     `yaml:"refresh_token"`
	UpdatedAt    *time.Time `yaml:"updated_at,omitempty"`
}

// FileStore keeps refresh tokens in a YAML file readable only by its owner.
type FileStore struct {
	mutex sync.Mutex
	path  string
	now   func() time.Time
}

// NewFileStore creates a file store at path. The file and its directory are
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		now:  time.Now,
	}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadRefreshToken implements msapi.RefreshTokenStore. A missing file or key
// yields "".
func (s *FileStore) LoadRefreshToken(_ context.Context, key string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := s.read()
	if err != nil {
		return "", err
	}

	entry, ok := file.Tokens[key]
	if !ok || entry == nil {
		return "", nil
	}

	return entry.RefreshToken, nil
}

// SaveRefreshToken implements msapi.RefreshTokenStore.
func (s *FileStore) SaveRefreshToken(_ context.Context, key, refreshToken string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	file.Tokens[key] = &tokenEntry{
		RefreshToken: refreshToken,
		UpdatedAt:    &now,
	}

	return s.write(file)
}

// Delete removes key from the file.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := file.Tokens[key]; !ok {
		return nil
	}

	delete(file.Tokens, key)

	return s.write(file)
}

func (s *FileStore) read() (*tokenFile, error) {
	file := &tokenFile{Tokens: make(map[string]*tokenEntry)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, nil
		}

		return nil, fmt.Errorf("reading token file: %w", err)
	}

	err = yaml.Unmarshal(data, file)
	if err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}

	if file.Tokens == nil {
		file.Tokens = make(map[string]*tokenEntry)
	}

	return file, nil
}

func (s *FileStore) write(file *tokenFile) error {
	err := os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding token file: %w", err)
	}

	tmp := s.path + ".tmp"

	err = os.WriteFile(tmp, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	err = os.Rename(tmp, s.path)
	if err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}

	return nil
}

var _ msapi.RefreshTokenStore = (*FileStore)(nil)
