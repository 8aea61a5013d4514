package usecase

import (
	"context"
	"time"
)

// Provider fetches raw live-data documents. A document that does not exist
// upstream (no game, feed not published yet) is returned as an error
// matching ErrNoData.
type Provider interface {
	FetchTodayScoreboard(ctx context.Context) ([]byte, error)
	FetchScoreboardByDate(ctx context.Context, date time.Time) ([]byte, error)
	FetchBoxScore(ctx context.Context, gameID string) ([]byte, error)
	FetchPlayByPlay(ctx context.Context, gameID string) ([]byte, error)
}
