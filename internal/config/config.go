package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/courtside/internal/domain/team"
	"github.com/riskibarqy/courtside/internal/interfaces/display"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

// Sink names accepted by ARTIFACT_SINKS.
const (
	SinkFile     = "file"
	SinkRedis    = "redis"
	SinkPostgres = "postgres"
)

// Config stores runtime configuration for the ticker.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	LogLevel       logging.Level
	LogFormat      logging.Format `validate:"oneof=json console"`

	Team     team.Team
	Location *time.Location `validate:"required"`

	PollInterval     time.Duration `validate:"gt=0"`
	LookaheadDays    int           `validate:"gt=0"`
	LookaheadWorkers int           `validate:"gt=0"`
	ScheduleCacheTTL time.Duration `validate:"gt=0"`

	NBABaseURL          string        `validate:"required,url"`
	NBAScheduleTemplate string        `validate:"required"`
	NBATimeout          time.Duration `validate:"gt=0"`
	NBAMaxRetries       int           `validate:"gte=0"`
	NBACircuit          resilience.CircuitBreakerConfig

	Display         display.Budgets
	DisplaySizeTags bool
	DisplayLastPlay bool

	ArtifactSinks []string `validate:"required,dive,oneof=file redis postgres"`
	ArtifactDir   string   `validate:"required_if=SinkFileEnabled true"`

	RedisAddr     string `validate:"required_if=SinkRedisEnabled true"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	RedisChannel  string
	RedisTTL      time.Duration `validate:"gte=0"`

	DBURL                   string `validate:"required_if=SinkPostgresEnabled true"`
	DBDisablePreparedBinary bool

	FrameAPIEnabled bool
	FrameAPIAddr    string `validate:"required_if=FrameAPIEnabled true"`

	UptraceEnabled             bool
	UptraceDSN                 string `validate:"required_if=UptraceEnabled true"`
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	SinkFileEnabled     bool
	SinkRedisEnabled    bool
	SinkPostgresEnabled bool
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat, ok := logging.ParseFormat(getEnv("APP_LOG_FORMAT", defaultLogFormat(appEnv)))
	if !ok {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are json, console", os.Getenv("APP_LOG_FORMAT"))
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "courtside"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                  logFormat,
		NBABaseURL:                 strings.TrimRight(getEnv("NBA_CDN_BASE_URL", "https://cdn.nba.com/static/json/liveData"), "/"),
		NBAScheduleTemplate:        getEnv("NBA_SCHEDULE_URL_TEMPLATE", "https://data.nba.net/prod/v1/{date}/scoreboard.json"),
		ArtifactDir:                getEnv("ARTIFACT_DIR", "./data"),
		RedisAddr:                  strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:              os.Getenv("REDIS_PASSWORD"),
		RedisChannel:               getEnv("REDIS_CHANNEL", "courtside:frames"),
		DBURL:                      strings.TrimSpace(os.Getenv("DB_URL")),
		FrameAPIAddr:               getEnv("FRAME_API_ADDR", ":8090"),
		UptraceDSN:                 strings.TrimSpace(os.Getenv("UPTRACE_DSN")),
		PyroscopeServerAddress:     strings.TrimSpace(os.Getenv("PYROSCOPE_SERVER_ADDRESS")),
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "courtside"),
		PyroscopeAuthToken:         strings.TrimSpace(os.Getenv("PYROSCOPE_AUTH_TOKEN")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(os.Getenv("PYROSCOPE_BASIC_AUTH_USER")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(os.Getenv("PYROSCOPE_BASIC_AUTH_PASSWORD")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	}

	cfg.Team, err = team.Resolve(getEnv("TEAM", "MIN"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM: %w", err)
	}

	cfg.Location, err = parseLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("parse TIMEZONE: %w", err)
	}

	if cfg.PollInterval, err = time.ParseDuration(getEnv("POLL_INTERVAL", "30s")); err != nil {
		return Config{}, fmt.Errorf("parse POLL_INTERVAL: %w", err)
	}
	if cfg.LookaheadDays, err = getEnvAsInt("LOOKAHEAD_DAYS", 5); err != nil {
		return Config{}, fmt.Errorf("parse LOOKAHEAD_DAYS: %w", err)
	}
	if cfg.LookaheadWorkers, err = getEnvAsInt("LOOKAHEAD_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse LOOKAHEAD_WORKERS: %w", err)
	}
	if cfg.ScheduleCacheTTL, err = time.ParseDuration(getEnv("SCHEDULE_CACHE_TTL", "10m")); err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_CACHE_TTL: %w", err)
	}

	if cfg.NBATimeout, err = time.ParseDuration(getEnv("NBA_HTTP_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("parse NBA_HTTP_TIMEOUT: %w", err)
	}
	if cfg.NBAMaxRetries, err = getEnvAsInt("NBA_MAX_RETRIES", 4); err != nil {
		return Config{}, fmt.Errorf("parse NBA_MAX_RETRIES: %w", err)
	}
	if cfg.NBACircuit, err = loadCircuit("NBA_CIRCUIT"); err != nil {
		return Config{}, err
	}

	defaults := display.DefaultBudgets()
	if cfg.Display.Small, err = getEnvAsInt("DISPLAY_WIDTH_SMALL", defaults.Small); err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_WIDTH_SMALL: %w", err)
	}
	if cfg.Display.Medium, err = getEnvAsInt("DISPLAY_WIDTH_MEDIUM", defaults.Medium); err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_WIDTH_MEDIUM: %w", err)
	}
	if cfg.Display.Large, err = getEnvAsInt("DISPLAY_WIDTH_LARGE", defaults.Large); err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_WIDTH_LARGE: %w", err)
	}
	if cfg.DisplaySizeTags, err = strconv.ParseBool(getEnv("DISPLAY_SIZE_TAGS", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_SIZE_TAGS: %w", err)
	}
	if cfg.DisplayLastPlay, err = strconv.ParseBool(getEnv("DISPLAY_SHOW_LAST_PLAY", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DISPLAY_SHOW_LAST_PLAY: %w", err)
	}

	cfg.ArtifactSinks = normalizeSinks(splitCSV(getEnv("ARTIFACT_SINKS", SinkFile)))
	for _, sink := range cfg.ArtifactSinks {
		switch sink {
		case SinkFile:
			cfg.SinkFileEnabled = true
		case SinkRedis:
			cfg.SinkRedisEnabled = true
		case SinkPostgres:
			cfg.SinkPostgresEnabled = true
		}
	}

	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.RedisTTL, err = time.ParseDuration(getEnv("REDIS_TTL", "0s")); err != nil {
		return Config{}, fmt.Errorf("parse REDIS_TTL: %w", err)
	}
	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false")); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	if cfg.FrameAPIEnabled, err = strconv.ParseBool(getEnv("FRAME_API_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse FRAME_API_ENABLED: %w", err)
	}
	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}

	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}

	openTimeout, err := time.ParseDuration(getEnv(prefix+"_OPEN_TIMEOUT", defaults.OpenTimeout.String()))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_OPEN_TIMEOUT must be > 0", prefix)
	}

	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func parseLocation(v string) (*time.Location, error) {
	name := strings.TrimSpace(v)
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func normalizeSinks(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(item)
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func defaultLogFormat(appEnv string) string {
	if appEnv == EnvDev {
		return string(logging.FormatConsole)
	}
	return string(logging.FormatJSON)
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
