package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

// ArtifactRepository writes each artifact kind to its own file under dir,
// replacing the previous content atomically.
type ArtifactRepository struct {
	dir string
}

func NewArtifactRepository(dir string) (*ArtifactRepository, error) {
	if dir == "" {
		return nil, errors.New("artifact dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create artifact dir %s", dir)
	}
	return &ArtifactRepository{dir: dir}, nil
}

func FileName(kind artifact.Kind) string {
	if kind == artifact.KindFrame {
		return "frame.txt"
	}
	return kind.String() + ".json"
}

func (r *ArtifactRepository) Path(kind artifact.Kind) string {
	return filepath.Join(r.dir, FileName(kind))
}

func (r *ArtifactRepository) Save(ctx context.Context, item artifact.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+FileName(item.Kind)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp artifact")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(item.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", item.Kind)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", item.Kind)
	}
	if err := os.Rename(tmpName, r.Path(item.Kind)); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", item.Kind)
	}
	return nil
}

// Latest reads back the file of kind. Only the body and kind are known.
func (r *ArtifactRepository) Latest(_ context.Context, kind artifact.Kind) (artifact.Artifact, bool, error) {
	body, err := os.ReadFile(r.Path(kind))
	if os.IsNotExist(err) {
		return artifact.Artifact{}, false, nil
	}
	if err != nil {
		return artifact.Artifact{}, false, errors.Wrapf(err, "read %s", kind)
	}
	return artifact.Artifact{Kind: kind, Body: body, Digest: artifact.Digest(body)}, true, nil
}
