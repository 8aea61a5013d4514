package redis

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/courtside/internal/domain/artifact"
)

const defaultKeyPrefix = "courtside:artifact:"

type Config struct {
	KeyPrefix string
	// Channel receives a notice for every saved artifact. Empty disables it.
	Channel string
	TTL     time.Duration
}

// Notice is published on Config.Channel after an artifact is stored.
type Notice struct {
	Kind       string    `json:"kind"`
	Key        string    `json:"key"`
	GameID     string    `json:"game_id,omitempty"`
	CycleID    string    `json:"cycle_id"`
	Digest     string    `json:"digest"`
	ObservedAt time.Time `json:"observed_at"`
}

// ArtifactRepository stores the latest body of each kind under its own key
// and announces it on a pub/sub channel.
type ArtifactRepository struct {
	client goredis.UniversalClient
	cfg    Config
}

func NewArtifactRepository(client goredis.UniversalClient, cfg Config) *ArtifactRepository {
	if strings.TrimSpace(cfg.KeyPrefix) == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	return &ArtifactRepository{client: client, cfg: cfg}
}

func (r *ArtifactRepository) Key(kind artifact.Kind) string {
	return r.cfg.KeyPrefix + kind.String()
}

func (r *ArtifactRepository) Save(ctx context.Context, item artifact.Artifact) error {
	key := r.Key(item.Kind)
	notice, err := sonic.Marshal(Notice{
		Kind:       item.Kind.String(),
		Key:        key,
		GameID:     item.GameID,
		CycleID:    item.CycleID,
		Digest:     item.Digest,
		ObservedAt: item.ObservedAt.UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode artifact notice")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, key, item.Body, r.cfg.TTL)
		if r.cfg.Channel != "" {
			pipe.Publish(ctx, r.cfg.Channel, notice)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "redis store %s", key)
	}
	return nil
}

func (r *ArtifactRepository) Latest(ctx context.Context, kind artifact.Kind) (artifact.Artifact, bool, error) {
	body, err := r.client.Get(ctx, r.Key(kind)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return artifact.Artifact{}, false, nil
	}
	if err != nil {
		return artifact.Artifact{}, false, errors.Wrapf(err, "redis get %s", r.Key(kind))
	}
	return artifact.Artifact{Kind: kind, Body: body, Digest: artifact.Digest(body)}, true, nil
}
