package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/verte-zerg/trainlog/internal/model"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
	jsonIndent      = "    "
)

// JSONStore keeps the collection as an indented JSON array in a single file.
type JSONStore struct {
	path string
}

// NewJSON returns a store backed by the file at path. The file is created on first save.
func NewJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file location.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the collection from disk.
func (s *JSONStore) Load(ctx context.Context) (model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.WithField("path", s.path).Debug("store file missing, starting empty")
			return model.Collection{}, nil
		}
		return nil, unavailable("read", s.path, err)
	}

	records, err := decodeCollection(data)
	if err != nil {
		logrus.WithError(err).WithField("path", s.path).Warn("store file unreadable, treating as empty")
		return model.Collection{}, nil
	}
	logrus.WithField("records", len(records)).Debug("store loaded")
	return records, nil
}

// Save overwrites the backing file with records.
func (s *JSONStore) Save(ctx context.Context, records model.Collection) error {
	data, err := encodeCollection(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return unavailable("create directory for", s.path, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return unavailable("write", s.path, err)
	}
	logrus.WithField("records", len(records)).Debug("store saved")
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *JSONStore) Close() error {
	return nil
}

func decodeCollection(data []byte) (model.Collection, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Collection{}, nil
	}
	var records model.Collection
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedPersistedData, err)
	}
	if records == nil {
		records = model.Collection{}
	}
	return records, nil
}

func encodeCollection(records model.Collection) ([]byte, error) {
	if records == nil {
		records = model.Collection{}
	}
	data, err := json.MarshalIndent(records, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return append(data, '\n'), nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	temp, err := os.CreateTemp(filepath.Dir(path), ".trainlog-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(temp.Name())
		}
	}()

	if _, err = temp.Write(data); err != nil {
		return multierr.Append(err, temp.Close())
	}
	if err = temp.Sync(); err != nil {
		return multierr.Append(err, temp.Close())
	}
	if err = temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err = os.Chmod(temp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(temp.Name(), path)
}
