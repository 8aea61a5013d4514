package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/courtside/internal/domain/game"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("courtside/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

const (
	attrCycleID = attribute.Key("courtside.cycle_id")
	attrTeam    = attribute.Key("courtside.team")
	attrPhase   = attribute.Key("courtside.phase")
	attrGameID  = attribute.Key("courtside.game_id")
)

// startUsecaseSpan only opens child spans. Calls without a traced parent stay
// untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func teamAttr(ref game.TeamRef) attribute.KeyValue {
	if ref.TriCode != "" {
		return attrTeam.String(ref.TriCode)
	}
	return attrTeam.String(ref.ID)
}

// cycleAttrs describes the outcome of one cycle; empty values are left out.
func cycleAttrs(cycleID, phase, gameID string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, 3)
	for _, kv := range []attribute.KeyValue{attrCycleID.String(cycleID), attrPhase.String(phase), attrGameID.String(gameID)} {
		if kv.Value.AsString() != "" {
			out = append(out, kv)
		}
	}
	return out
}
