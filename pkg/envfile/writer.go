package envfile

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/aretw0/kosuke/internal/adapters/file"
	"github.com/aretw0/kosuke/pkg/domain"
)

// FileWriter implements ports.DocumentWriter on the local filesystem.
type FileWriter struct {
	Dir string
}

// NewFileWriter writes documents under dir ("" means the working directory).
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{Dir: dir}
}

// Write stores every document atomically. Env files hold secrets, so they are
// created owner-readable only.
func (w *FileWriter) Write(ctx context.Context, docs ...domain.Document) error {
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(w.Dir, doc.Name)
		if err := file.WriteAtomic(path, []byte(doc.Content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// Path returns where a document with the given name is written.
func (w *FileWriter) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// GenerateSecret returns n cryptographically random bytes, base64 (standard) encoded.
func GenerateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}
