package artifact

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Sinks saves to every repository in order. A failing sink does not stop the
// others; their errors are combined.
type Sinks []Repository

func (s Sinks) Save(ctx context.Context, item Artifact) error {
	var combined error
	for _, repo := range s {
		if repo == nil {
			continue
		}
		if err := repo.Save(ctx, item); err != nil {
			combined = errors.CombineErrors(combined, errors.Wrapf(err, "save %s", item.Kind))
		}
	}
	return combined
}
