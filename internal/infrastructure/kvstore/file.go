package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
)

var _ repository.KeyValueStore = (*File)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// File guarda cada clave como <dir>/<key>.json. La escritura es atómica (temp + rename).
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile crea el directorio si no existe.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("clave inválida %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Load lee el archivo de la clave; si no existe devuelve found=false.
func (f *File) Load(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", p, err)
	}
	return raw, true, nil
}

// Save reemplaza el archivo de la clave.
func (f *File) Save(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("renombrar %s: %w", key, err)
	}
	return nil
}
