package localfs

import (
	"bytes"
	"context"
	"io"
	"testing"

	"clipgen/internal/pkg/errors"
	"clipgen/internal/ports"
)

func put(t *testing.T, l *LocalFS, key string, data []byte) ports.PutObjectOutput {
	t.Helper()
	out, err := l.PutObject(context.Background(), ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: "application/octet-stream",
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
	})
	if err != nil {
		t.Fatalf("PutObject(%s): %v", key, err)
	}
	return out
}

func TestPutGetRoundTrip(t *testing.T) {
	l := New(t.TempDir(), "http://localhost:8080/files/")

	out := put(t, l, "video-generation/cat.png", []byte("png bytes"))
	if out.URL != "http://localhost:8080/files/video-generation/cat.png" {
		t.Errorf("URL = %q", out.URL)
	}
	if out.Size != 9 {
		t.Errorf("Size = %d", out.Size)
	}

	rc, contentType, size, err := l.GetObject(context.Background(), "video-generation/cat.png")
	if err != nil {
		t.Fatalf("GetObject: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("png bytes")) {
		t.Errorf("data = %q", data)
	}
	if contentType != "image/png" {
		t.Errorf("contentType = %q", contentType)
	}
	if size != 9 {
		t.Errorf("size = %d", size)
	}
}

func TestGetObjectMissing(t *testing.T) {
	l := New(t.TempDir(), "http://localhost:8080/files")

	_, _, _, err := l.GetObject(context.Background(), "generated-videos/nope.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("error is not NOT_FOUND: %v", err)
	}
}

func TestTraversalRejected(t *testing.T) {
	l := New(t.TempDir(), "http://localhost:8080/files")

	for _, key := range []string{"../outside.txt", "a/../../outside.txt", "", "."} {
		_, err := l.PutObject(context.Background(), ports.PutObjectInput{
			ObjectKey: key,
			Reader:    bytes.NewReader([]byte("x")),
		})
		if err == nil {
			t.Errorf("PutObject(%q) accepted a traversal key", key)
		}
	}
}

func TestKeyNormalization(t *testing.T) {
	l := New(t.TempDir(), "http://localhost:8080/files")

	out := put(t, l, "./video-generation//cat.png", []byte("x"))
	if out.ObjectKey != "video-generation/cat.png" {
		t.Errorf("ObjectKey = %q", out.ObjectKey)
	}
}
