package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/domain/team"
	"github.com/riskibarqy/courtside/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "courtside",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	t.Parallel()

	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true}, nil)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	t.Parallel()

	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestProfileTags(t *testing.T) {
	t.Parallel()

	cfg := config.Config{AppEnv: config.EnvProd, ServiceName: "courtside", Team: team.Team{TriCode: "MIN"}}
	tags := profileTags(cfg)
	if tags["env"] != "prod" || tags["service"] != "courtside" || tags["team"] != "MIN" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if got := teamAttribute(cfg); got.Value.AsString() != "MIN" {
		t.Fatalf("unexpected team attribute: %v", got)
	}

	if _, ok := profileTags(config.Config{})["team"]; ok {
		t.Fatalf("expected no team tag without a team")
	}
}
