package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/gianghaison/gianghaison.me/storage"
	"github.com/gianghaison/gianghaison.me/utils"
)

// fakeStore records Put calls instead of talking to an object store.
type fakeStore struct {
	puts    []fakePut
	putErr  error
	deleted []string
}

type fakePut struct {
	key          string
	data         []byte
	contentType  string
	cacheControl string
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte, contentType, cacheControl string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts = append(f.puts, fakePut{key, data, contentType, cacheControl})
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) List(_ context.Context, _ string) ([]storage.StoredObject, error) {
	return nil, nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadResizesWideImages(t *testing.T) {
	store := &fakeStore{}
	pl := NewPipeline(store)

	result, err := pl.Upload(context.Background(), encodeJPEG(t, 2000, 1000), "Holiday Photo.JPG", FolderBlog)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if result.Original.Width != 2000 || result.Original.Height != 1000 {
		t.Errorf("original metadata = %dx%d, want 2000x1000", result.Original.Width, result.Original.Height)
	}
	if result.Processed.Width != MaxWidth || result.Processed.Height != 600 {
		t.Errorf("processed = %dx%d, want %dx600 with aspect ratio kept", result.Processed.Width, result.Processed.Height, MaxWidth)
	}
	if result.Processed.Format != "webp" {
		t.Errorf("processed format = %q, want webp", result.Processed.Format)
	}

	if len(store.puts) != 1 {
		t.Fatalf("store received %d puts, want 1", len(store.puts))
	}
	put := store.puts[0]
	if !strings.HasPrefix(put.key, FolderBlog+"/holiday-photo-") || !strings.HasSuffix(put.key, ".webp") {
		t.Errorf("key = %q, want blog/holiday-photo-*.webp", put.key)
	}
	if put.contentType != "image/webp" {
		t.Errorf("content type = %q, want image/webp", put.contentType)
	}
	if put.cacheControl != "public, max-age=31536000" {
		t.Errorf("cache control = %q, want immutable year-long caching", put.cacheControl)
	}
	if result.URL != "https://cdn.example.com/"+put.key {
		t.Errorf("URL = %q, want the store URL for %q", result.URL, put.key)
	}
}

func TestUploadNeverUpscales(t *testing.T) {
	store := &fakeStore{}
	pl := NewPipeline(store)

	result, err := pl.Upload(context.Background(), encodePNG(t, 400, 300), "small.png", FolderArt)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.Processed.Width != 400 || result.Processed.Height != 300 {
		t.Errorf("processed = %dx%d, small image must keep its dimensions", result.Processed.Width, result.Processed.Height)
	}
	if result.Processed.Format != "webp" {
		t.Errorf("format = %q, small images are still re-encoded to webp", result.Processed.Format)
	}
	if !strings.HasPrefix(store.puts[0].key, FolderArt+"/") {
		t.Errorf("key = %q, want art/ prefix", store.puts[0].key)
	}
}

func TestUploadGates(t *testing.T) {
	jpegMagic := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 64)...)

	tests := []struct {
		name     string
		data     []byte
		folder   string
		wantKind utils.ErrorKind
	}{
		{"unknown folder", []byte("x"), "invalid", utils.KindInvalidEnumValue},
		{"oversized payload", make([]byte, MaxUploadBytes+1), FolderBlog, utils.KindPayloadTooLarge},
		{"plain text", []byte("definitely not an image"), FolderBlog, utils.KindUnsupportedFormat},
		{"corrupt jpeg", jpegMagic, FolderBlog, utils.KindInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			pl := NewPipeline(store)

			_, err := pl.Upload(context.Background(), tt.data, "file.bin", tt.folder)
			if !utils.IsKind(err, tt.wantKind) {
				t.Fatalf("error kind = %v (%v), want %v", utils.KindOf(err), err, tt.wantKind)
			}
			if len(store.puts) != 0 {
				t.Errorf("store was written to despite rejection")
			}
		})
	}
}

func TestUploadWrapsStoreFailure(t *testing.T) {
	store := &fakeStore{putErr: errors.New("connection refused")}
	pl := NewPipeline(store)

	_, err := pl.Upload(context.Background(), encodePNG(t, 10, 10), "a.png", FolderBlog)
	if !utils.IsKind(err, utils.KindStorageWriteFailed) {
		t.Fatalf("error kind = %v, want storage write failure", utils.KindOf(err))
	}
	if !errors.Is(err, store.putErr) {
		t.Errorf("wrapped error lost the cause: %v", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	store := &fakeStore{}
	pl := NewPipeline(store)

	if err := pl.Delete(context.Background(), "blog/old.webp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "blog/old.webp" {
		t.Errorf("deleted = %v, want the requested key", store.deleted)
	}

	if _, err := pl.List(context.Background(), FolderBlog); err != nil {
		t.Fatalf("List: %v", err)
	}
}
