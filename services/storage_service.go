// file: services/storage_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrObjectExists = errors.New("el objeto ya existe")

// ObjectStorage is the contract the attachment flow depends on. The local
// implementation keeps files on disk and serves them under /files/; the
// interface keeps a bucket-backed implementation drop-in.
type ObjectStorage interface {
	Upload(key string, r io.Reader, overwrite bool) error
	PublicURL(key string) string
	Delete(key string) error
	List() ([]string, error)
}

type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de subida: %w", err)
	}
	return &LocalStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the object at key. With overwrite=false an existing object
// is a hard error so accidental collisions surface instead of clobbering.
func (s *LocalStorage) Upload(key string, r io.Reader, overwrite bool) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}

// PublicURL is a pure lookup; it never fails once the object exists.
func (s *LocalStorage) PublicURL(key string) string {
	return s.baseURL + "/files/" + key
}

func (s *LocalStorage) Delete(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *LocalStorage) List() ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	return keys, err
}

// resolve guards against path traversal in keys.
func (s *LocalStorage) resolve(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("clave de objeto inválida: %s", key)
	}
	return path, nil
}
