package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

const upsertArtifactQuery = `INSERT INTO display_artifacts (kind, game_id, cycle_id, body, digest, observed_at)
VALUES (:kind, :game_id, :cycle_id, :body, :digest, :observed_at)
ON CONFLICT (kind)
DO UPDATE SET
    game_id = EXCLUDED.game_id,
    cycle_id = EXCLUDED.cycle_id,
    body = EXCLUDED.body,
    digest = EXCLUDED.digest,
    observed_at = EXCLUDED.observed_at,
    updated_at = NOW()`

const latestArtifactQuery = `SELECT kind, game_id, cycle_id, body, digest, observed_at
FROM display_artifacts
WHERE kind = $1`

// ArtifactRepository keeps one row per artifact kind; each save replaces it.
type ArtifactRepository struct {
	db *sqlx.DB
}

func NewArtifactRepository(db *sqlx.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

func (r *ArtifactRepository) Save(ctx context.Context, item artifact.Artifact) error {
	if item.CycleID == "" {
		return fmt.Errorf("cycle id is required")
	}
	if _, err := r.db.NamedExecContext(ctx, upsertArtifactQuery, toArtifactModel(item)); err != nil {
		return fmt.Errorf("upsert display artifact kind=%s: %w", item.Kind, err)
	}
	return nil
}

func (r *ArtifactRepository) Latest(ctx context.Context, kind artifact.Kind) (artifact.Artifact, bool, error) {
	var row artifactTableModel
	if err := r.db.GetContext(ctx, &row, latestArtifactQuery, kind.String()); err != nil {
		if isNotFound(err) {
			return artifact.Artifact{}, false, nil
		}
		return artifact.Artifact{}, false, fmt.Errorf("get display artifact kind=%s: %w", kind, err)
	}
	item, ok := row.toDomain()
	if !ok {
		return artifact.Artifact{}, false, fmt.Errorf("unknown artifact kind %q in store", row.Kind)
	}
	return item, true, nil
}
