package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

type artifactTableModel struct {
	Kind       string         `db:"kind"`
	GameID     sql.NullString `db:"game_id"`
	CycleID    string         `db:"cycle_id"`
	Body       []byte         `db:"body"`
	Digest     string         `db:"digest"`
	ObservedAt time.Time      `db:"observed_at"`
}

func toArtifactModel(item artifact.Artifact) artifactTableModel {
	return artifactTableModel{
		Kind:       item.Kind.String(),
		GameID:     sql.NullString{String: item.GameID, Valid: item.GameID != ""},
		CycleID:    item.CycleID,
		Body:       item.Body,
		Digest:     item.Digest,
		ObservedAt: item.ObservedAt.UTC(),
	}
}

func (m artifactTableModel) toDomain() (artifact.Artifact, bool) {
	kind, ok := artifact.ParseKind(m.Kind)
	if !ok {
		return artifact.Artifact{}, false
	}
	return artifact.Artifact{
		Kind:       kind,
		GameID:     m.GameID.String,
		CycleID:    m.CycleID,
		Body:       m.Body,
		Digest:     m.Digest,
		ObservedAt: m.ObservedAt.UTC(),
	}, true
}
