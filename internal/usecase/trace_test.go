package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/courtside/internal/domain/game"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartUsecaseSpan_NoParentStaysUntraced(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := startUsecaseSpan(ctx, "usecase.TickerService.RunCycle", teamAttr(game.TeamRef{TriCode: "MIN"}))
	defer span.End()

	require.Equal(t, ctx, got)
	require.False(t, span.IsRecording())
	require.False(t, span.SpanContext().IsValid())
}

func TestTeamAttr_FallsBackToID(t *testing.T) {
	t.Parallel()

	require.Equal(t, attribute.String("courtside.team", "MIN"), teamAttr(game.TeamRef{TriCode: "MIN", ID: "1610612750"}))
	require.Equal(t, attribute.String("courtside.team", "1610612750"), teamAttr(game.TeamRef{ID: "1610612750"}))
}

func TestCycleAttrs_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, []attribute.KeyValue{
		attribute.String("courtside.cycle_id", "c-1"),
	}, cycleAttrs("c-1", "", ""))
	require.Equal(t, []attribute.KeyValue{
		attribute.String("courtside.phase", "active"),
		attribute.String("courtside.game_id", "0022600101"),
	}, cycleAttrs("", "active", "0022600101"))
	require.Empty(t, cycleAttrs("", "", ""))
}
