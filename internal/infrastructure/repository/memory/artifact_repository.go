package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

// ArtifactRepository keeps the latest artifact of each kind in process. It
// backs the frame API.
type ArtifactRepository struct {
	mu    sync.RWMutex
	items map[artifact.Kind]artifact.Artifact
}

func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{items: make(map[artifact.Kind]artifact.Artifact, len(artifact.Kinds()))}
}

func (r *ArtifactRepository) Save(_ context.Context, item artifact.Artifact) error {
	item.Body = bytes.Clone(item.Body)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.Kind] = item
	return nil
}

func (r *ArtifactRepository) Latest(_ context.Context, kind artifact.Kind) (artifact.Artifact, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[kind]
	if !ok {
		return artifact.Artifact{}, false, nil
	}
	item.Body = bytes.Clone(item.Body)
	return item, true, nil
}
