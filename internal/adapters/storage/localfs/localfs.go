package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apperrors "clipgen/internal/pkg/errors"
	"clipgen/internal/ports"
)

// LocalFS implements ports.StorageProvider on the local filesystem. It is
// intended for development and tests; returned URLs point at the API's own
// /files/ route.
type LocalFS struct {
	root    string
	baseURL string
}

func New(root, baseURL string) *LocalFS {
	return &LocalFS{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LocalFS) Provider() string { return "localfs" }

func (l *LocalFS) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	key, err := sanitizeKey(in.ObjectKey)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}

	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ports.PutObjectOutput{}, err
	}

	outF, err := os.Create(dst)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	defer outF.Close()

	n, err := io.Copy(outF, in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}

	return ports.PutObjectOutput{
		ObjectKey: key,
		URL:       l.baseURL + "/" + key,
		Size:      n,
	}, nil
}

func (l *LocalFS) GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error) {
	key, err := sanitizeKey(objectKey)
	if err != nil {
		return nil, "", 0, err
	}

	p := filepath.Join(l.root, filepath.FromSlash(key))
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", 0, apperrors.NotFound("object", key)
		}
		return nil, "", 0, err
	}

	st, statErr := f.Stat()
	if statErr == nil {
		size = st.Size()
	}

	// Prefer extension-based type. If empty, sniff first bytes.
	contentType = mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		_, _ = f.Seek(0, 0)
		contentType = http.DetectContentType(buf[:n])
	}

	return f, contentType, size, nil
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("localfs: object_key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimLeft(strings.TrimPrefix(key, "./"), "/")
	cleaned := strings.ReplaceAll(filepath.Clean(key), "\\", "/")
	if cleaned == "." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("localfs: invalid object key %q", key)
	}
	return cleaned, nil
}
