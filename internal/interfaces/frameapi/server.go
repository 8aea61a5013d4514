package frameapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtside/internal/domain/artifact"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/usecase"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const artifactsPrefix = "/artifacts/"

var errMethodNotAllowed = errors.New("method not allowed")

// Server exposes the latest rendered frame and artifacts over HTTP.
type Server struct {
	reader artifact.Reader
	logger *logging.Logger
	server *fasthttp.Server
}

func NewServer(reader artifact.Reader, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{reader: reader, logger: logger}
	s.server = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "courtside",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe(addr string) error {
	return s.server.ListenAndServe(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.ShutdownWithContext(ctx)
}

// Handler wraps routing with panic recovery, tracing and access logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.recoverPanic(s.trace(s.route))
}

func (s *Server) route(ctx context.Context, rc *fasthttp.RequestCtx) {
	path := string(rc.Path())
	if !rc.IsGet() && !rc.IsHead() {
		writeError(ctx, rc, fmt.Errorf("%w: %s %s", errMethodNotAllowed, rc.Method(), path))
		return
	}

	switch {
	case path == "/healthz":
		writeSuccess(rc, map[string]string{"status": "ok"})
	case path == "/frame":
		s.serveArtifact(ctx, rc, artifact.KindFrame)
	case strings.HasPrefix(path, artifactsPrefix):
		name := strings.TrimPrefix(path, artifactsPrefix)
		kind, ok := artifact.ParseKind(name)
		if !ok {
			writeError(ctx, rc, fmt.Errorf("%w: unknown artifact %q", usecase.ErrInvalidInput, name))
			return
		}
		s.serveArtifact(ctx, rc, kind)
	default:
		writeError(ctx, rc, fmt.Errorf("%w: %s", usecase.ErrNotFound, path))
	}
}

func (s *Server) serveArtifact(ctx context.Context, rc *fasthttp.RequestCtx, kind artifact.Kind) {
	ctx, span := startSpan(ctx, "frameapi.serveArtifact")
	defer span.End()

	item, ok, err := s.reader.Latest(ctx, kind)
	if err != nil {
		writeError(ctx, rc, fmt.Errorf("%w: read %s: %v", usecase.ErrDependencyUnavailable, kind, err))
		return
	}
	if !ok {
		writeError(ctx, rc, fmt.Errorf("%w: no %s rendered yet", usecase.ErrNoData, kind))
		return
	}

	rc.SetStatusCode(fasthttp.StatusOK)
	rc.SetContentType(kind.ContentType())
	if item.Digest != "" {
		rc.Response.Header.Set("ETag", `"`+item.Digest+`"`)
	}
	if item.CycleID != "" {
		rc.Response.Header.Set("X-Cycle-Id", item.CycleID)
	}
	if !item.ObservedAt.IsZero() {
		rc.Response.Header.Set("Last-Modified", item.ObservedAt.UTC().Format(time.RFC1123))
	}
	rc.SetBody(item.Body)
}

type routeFunc func(ctx context.Context, rc *fasthttp.RequestCtx)

func (s *Server) trace(next routeFunc) routeFunc {
	return func(ctx context.Context, rc *fasthttp.RequestCtx) {
		path := string(rc.Path())
		if path == "/healthz" {
			next(ctx, rc)
			return
		}

		start := time.Now()
		ctx, span := apiTracer.Start(ctx, "GET "+path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		next(ctx, rc)

		status := rc.Response.StatusCode()
		span.SetAttributes(
			attribute.String("http.route", path),
			attribute.Int("http.status_code", status),
		)
		s.logger.DebugContext(ctx, "frame api request",
			"method", string(rc.Method()),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) recoverPanic(next routeFunc) fasthttp.RequestHandler {
	return func(rc *fasthttp.RequestCtx) {
		ctx := context.Background()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", string(rc.Path()))
				writeError(ctx, rc, fmt.Errorf("internal error"))
			}
		}()
		next(ctx, rc)
	}
}
