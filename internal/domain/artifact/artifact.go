package artifact

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
)

// Kind names one persisted output of a poll cycle.
type Kind uint8

const (
	KindToday Kind = iota
	KindPlayByPlay
	KindBoxScore
	KindFrame

	kindCount = 4
)

var kindNames = [kindCount]string{
	KindToday:      "today",
	KindPlayByPlay: "play_by_play",
	KindBoxScore:   "box_score",
	KindFrame:      "frame",
}

func Kinds() []Kind {
	return []Kind{KindToday, KindPlayByPlay, KindBoxScore, KindFrame}
}

func (k Kind) String() string {
	if int(k) < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

func ParseKind(v string) (Kind, bool) {
	for i, name := range kindNames {
		if name == v {
			return Kind(i), true
		}
	}
	return 0, false
}

// ContentType is the media type of the artifact body.
func (k Kind) ContentType() string {
	if k == KindFrame {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

type Artifact struct {
	Kind       Kind
	GameID     string
	CycleID    string
	Body       []byte
	Digest     string
	ObservedAt time.Time
}

// Repository persists the latest artifact of each kind.
type Repository interface {
	Save(ctx context.Context, item Artifact) error
}

// Reader returns the latest artifact of a kind.
type Reader interface {
	Latest(ctx context.Context, kind Kind) (Artifact, bool, error)
}

// Encode renders v as indented JSON, the form artifacts are stored and
// compared in.
func Encode(v any) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(v, "", "  ")
}

func Digest(body []byte) string {
	return strconv.FormatUint(xxhash.Sum64(body), 16)
}
