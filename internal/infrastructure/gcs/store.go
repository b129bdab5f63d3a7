package gcs

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Folders the application uploads into.
const (
	AvatarFolder  = "avatars"
	ProductFolder = "products"
)

// Store is the external image host: uploads return an (id, url) reference
// pair and Destroy removes a previously uploaded object by id.
type Store struct {
	Client *storage.Client
	Bucket string
}

// NewClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewStore(client *storage.Client, bucket string) *Store {
	return &Store{Client: client, Bucket: bucket}
}

// Upload writes the reader into folder/<uuid><ext> and returns the object
// path as id along with its public URL.
func (s *Store) Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (id, url string, err error) {
	if s.Client == nil || s.Bucket == "" {
		return "", "", fmt.Errorf("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	wc := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", "", err
	}
	if err := wc.Close(); err != nil {
		return "", "", err
	}
	return objectPath, PublicURL(s.Bucket, objectPath), nil
}

// Destroy deletes an uploaded object by its id (object path).
func (s *Store) Destroy(ctx context.Context, id string) error {
	if s.Client == nil || s.Bucket == "" {
		return fmt.Errorf("gcs not configured")
	}
	return s.Client.Bucket(s.Bucket).Object(id).Delete(ctx)
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
