package repositories

import (
	"context"
	"fmt"
	"io"

	"github.com/Dosada05/participants-admin/models"
)

// ObjectReader is the read side of the object store (see storage.FileUploader).
type ObjectReader interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type objectSeed struct {
	store ObjectReader
	key   string
}

// NewObjectSeed reads the fixture document stored under key in the bucket.
func NewObjectSeed(store ObjectReader, key string) SeedSource {
	return &objectSeed{store: store, key: key}
}

func (s *objectSeed) Load(ctx context.Context) ([]models.Participant, error) {
	body, err := s.store.Download(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed object %q: %w", s.key, err)
	}
	defer body.Close()

	return decodeParticipants(body)
}
