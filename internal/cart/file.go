package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Goga-Rid/pitza/internal/storage"
)

// FileStorage persists the cart as one JSON file, the restart-surviving
// local store the drawer reads at startup.
type FileStorage struct {
	file *storage.File
}

func NewFileStorage(file *storage.File) *FileStorage {
	return &FileStorage{file: file}
}

func (f *FileStorage) Load(_ context.Context) ([]Line, error) {
	data, err := f.file.Read()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

func (f *FileStorage) Save(_ context.Context, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	return f.file.Write(data)
}

func (f *FileStorage) Clear(_ context.Context) error {
	return f.file.Remove()
}
