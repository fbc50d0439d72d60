package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage writes one file per slot; every write goes to a temp file that is synced and renamed over
// the previous one, so readers see either the old blob or the new one.
type FileStorage struct {
	dir        string
	compressor CompressorInterface
}

func NewFileStorage(dir string, compressor CompressorInterface) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	if compressor == nil {
		compressor = identity{}
	}
	return &FileStorage{dir: dir, compressor: compressor}, nil
}

var slotNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, slotNameReplacer.Replace(key)+".slot")
}

func (f *FileStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	out, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptSlot, key, err)
	}
	return out, true, nil
}

func (f *FileStorage) Set(_ context.Context, key string, data []byte) error {
	payload, err := f.compressor.Compress(data)
	if err != nil {
		return err
	}

	fileName := f.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(payload)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStorage) Driver() string { return DriverFile }

func (f *FileStorage) Close() error {
	f.compressor.Close()
	return nil
}
