package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

func TestArtifactModel_RoundTripsThroughRow(t *testing.T) {
	t.Parallel()

	observed := time.Date(2026, 10, 19, 20, 0, 0, 0, time.FixedZone("CDT", -5*60*60))
	item := artifact.Artifact{
		Kind:       artifact.KindBoxScore,
		GameID:     "0022600101",
		CycleID:    "cycle-1",
		Body:       []byte(`{"assist": null}`),
		Digest:     "abc",
		ObservedAt: observed,
	}

	model := toArtifactModel(item)
	if model.Kind != "box_score" {
		t.Fatalf("unexpected kind column %q", model.Kind)
	}
	if !model.ObservedAt.Equal(observed) || model.ObservedAt.Location() != time.UTC {
		t.Fatalf("observed_at must be stored in UTC, got %v", model.ObservedAt)
	}

	got, ok := model.toDomain()
	if !ok {
		t.Fatalf("expected known kind")
	}
	if got.Kind != item.Kind || got.GameID != item.GameID || string(got.Body) != string(item.Body) {
		t.Fatalf("unexpected artifact %+v", got)
	}
}

func TestArtifactModel_EmptyGameIDIsNull(t *testing.T) {
	t.Parallel()

	model := toArtifactModel(artifact.Artifact{Kind: artifact.KindFrame, CycleID: "c"})
	if model.GameID.Valid {
		t.Fatalf("expected NULL game_id")
	}
	if _, ok := (artifactTableModel{Kind: "scoreboard"}).toDomain(); ok {
		t.Fatalf("unknown kind must not decode")
	}
}

func TestUpsertArtifactQuery_BindsEveryColumn(t *testing.T) {
	t.Parallel()

	for _, col := range []string{"kind", "game_id", "cycle_id", "body", "digest", "observed_at"} {
		if !strings.Contains(upsertArtifactQuery, ":"+col) {
			t.Fatalf("upsert query does not bind %s", col)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fmt.Errorf("pq: relation display_artifacts does not exist")) {
		t.Fatalf("unexpected match")
	}
}
