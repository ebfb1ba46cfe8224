package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeBucket is a tiny path-style S3 endpoint that stores PUT bodies.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]bool
	puts    int
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := strings.TrimPrefix(r.URL.Path, "/covers/")
	switch r.Method {
	case http.MethodPut:
		_, _ = io.Copy(io.Discard, r.Body)
		b.objects[key] = true
		b.puts++
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodHead:
		if b.objects[key] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeObjectStore(t *testing.T) (*ObjectStore, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string]bool{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
	})
	return NewObjectStore(client, "covers"), bucket
}

func TestObjectStorePutAndExists(t *testing.T) {
	store, _ := newFakeObjectStore(t)

	path := filepath.Join(t.TempDir(), "cover.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := store.PutFile(ctx, "uploads/cover.jpg", path); err != nil {
		t.Fatalf("PutFile: %v", err)
	}

	ok, err := store.Exists(ctx, "uploads/cover.jpg")
	if err != nil || !ok {
		t.Errorf("expected object to exist, got %v %v", ok, err)
	}
	ok, err = store.Exists(ctx, "uploads/missing.jpg")
	if err != nil || ok {
		t.Errorf("expected missing object, got %v %v", ok, err)
	}
}

func TestObjectStoreEnsureUploadsOnce(t *testing.T) {
	store, bucket := newFakeObjectStore(t)
	path := filepath.Join(t.TempDir(), "default.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	uploaded, err := store.Ensure(ctx, "uploads/default/default.jpg", path)
	if err != nil || !uploaded {
		t.Fatalf("expected first Ensure to upload, got %v %v", uploaded, err)
	}
	uploaded, err = store.Ensure(ctx, "uploads/default/default.jpg", path)
	if err != nil || uploaded {
		t.Errorf("expected second Ensure to skip, got %v %v", uploaded, err)
	}
	if bucket.puts != 1 {
		t.Errorf("expected 1 PUT, got %d", bucket.puts)
	}
}

func TestObjectStoreDelete(t *testing.T) {
	store, _ := newFakeObjectStore(t)
	path := filepath.Join(t.TempDir(), "cover.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := store.PutFile(ctx, "uploads/cover.jpg", path); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if err := store.Delete(ctx, "uploads/cover.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, err := store.Exists(ctx, "uploads/cover.jpg"); err != nil || ok {
		t.Errorf("expected object gone, got %v %v", ok, err)
	}
}
