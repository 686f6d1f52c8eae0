package storage

import (
	"bytes"
	"fmt"
	"os"
	"skinwatch/internal/providers"
	"skinwatch/internal/storage/interfaces"
	"skinwatch/internal/structures"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gofrs/flock"
)

const fileFormatVersion = 1

type fileEnvelope struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileStore is shared by the daemon and the CLI, so the file is the source
// of truth: every call re-reads it under an inter-process lock, and writes go
// to a temp file that is fsynced and renamed over the original.
type FileStore struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	lock       *flock.Flock

	// flock state is per handle, so calls within this process are serialized here
	mu          sync.Mutex
	plainWarned bool
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.KeyValueStoreInterface, error) {
	fs := &FileStore{
		path:       conf.Store.FilePath,
		compressor: compressor,
		logger:     logger,
		lock:       flock.New(conf.Store.FilePath + ".lock"),
	}
	if _, err := fs.read(); err != nil {
		return nil, fmt.Errorf("unable to load store %s: %w", fs.path, err)
	}
	return fs, nil
}

func (f *FileStore) Get(key string) (string, bool, error) {
	entries, err := f.read()
	if err != nil {
		return "", false, err
	}
	val, ok := entries[key]
	return val, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	return f.update(func(entries map[string]string) bool {
		if cur, ok := entries[key]; ok && cur == value {
			return false
		}
		entries[key] = value
		return true
	})
}

func (f *FileStore) Delete(key string) error {
	return f.update(func(entries map[string]string) bool {
		if _, ok := entries[key]; !ok {
			return false
		}
		delete(entries, key)
		return true
	})
}

func (f *FileStore) Close() {
	f.compressor.Close()
	_ = f.lock.Close()
}

func (f *FileStore) read() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	return f.load()
}

// update applies mutate to the current file contents and saves the result
// when mutate reports a change. The exclusive lock spans read and write.
func (f *FileStore) update(mutate func(entries map[string]string) bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer f.lock.Unlock()

	entries, err := f.load()
	if err != nil {
		return err
	}
	if !mutate(entries) {
		return nil
	}
	return f.save(entries)
}

func (f *FileStore) save(entries map[string]string) error {
	jsonData, err := json.Marshal(fileEnvelope{Version: fileFormatVersion, Entries: entries})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
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

	return os.Rename(tmpFile, f.path)
}

func (f *FileStore) load() (map[string]string, error) {
	entries := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return entries, nil
	}

	decoded, err := f.compressor.Decompress(data)
	if err != nil {
		// store.compress may have been switched off and on between runs
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, err
		}
		if !f.plainWarned {
			f.logger.Warnf(providers.TypeApp, "Store %s is not compressed, reading it as plain JSON", f.path)
			f.plainWarned = true
		}
		decoded = data
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(decoded, &envelope); err != nil {
		return nil, err
	}
	if envelope.Version > fileFormatVersion {
		return nil, fmt.Errorf("unsupported store version %d", envelope.Version)
	}
	for k, v := range envelope.Entries {
		entries[k] = v
	}
	return entries, nil
}
