package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"im-client/internal/models"
)

// FileCredentialStore keeps the identity in a JSON file readable only by the
// current user.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore creates a store backed by path. The directory is
// created on first Save.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (s *FileCredentialStore) Load(ctx context.Context) (models.Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Identity{}, ErrNoCredentials
		}
		return models.Identity{}, fmt.Errorf("read credentials %s: %w", s.path, err)
	}
	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return models.Identity{}, fmt.Errorf("decode credentials %s: %w", s.path, err)
	}
	if identity.IsZero() {
		return models.Identity{}, ErrNoCredentials
	}
	return identity, nil
}

// Save writes the identity atomically through a temp file and rename.
func (s *FileCredentialStore) Save(ctx context.Context, identity models.Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileCredentialStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
