package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/waiverwire/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string

	CacheEnabled bool
	CacheTTL     time.Duration

	SleeperBaseURL               string
	SleeperTimeout               time.Duration
	SleeperMaxRetries            int
	SleeperCircuitEnabled        bool
	SleeperCircuitFailureCount   int
	SleeperCircuitOpenTimeout    time.Duration
	SleeperCircuitHalfOpenMaxReq int
	SleeperTrendingLookbackHours int
	SleeperTrendingLimit         int

	RankingsBaseURL string
	RankingsAPIKey  string
	RankingsTimeout time.Duration
	RankingsFormat  string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	var cfg Config

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}
	cfg.AppEnv = appEnv
	cfg.ServiceName = getEnv("SERVICE_NAME", "waiverwire")
	cfg.ServiceVersion = getEnv("SERVICE_VERSION", "dev")
	cfg.HTTPAddr = getEnv("APP_HTTP_ADDR", ":8080")

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))
	cfg.CORSAllowedOrigins = splitCSV(getEnv("APP_CORS_ALLOWED_ORIGINS", "*"))

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	cfg.SleeperBaseURL = strings.TrimRight(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"), "/")
	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	cfg.SleeperTimeout = sleeperTimeout

	sleeperMaxRetries, err := getEnvAsInt("SLEEPER_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_MAX_RETRIES: %w", err)
	}
	if sleeperMaxRetries < 0 {
		return Config{}, fmt.Errorf("SLEEPER_MAX_RETRIES must be >= 0")
	}
	cfg.SleeperMaxRetries = sleeperMaxRetries

	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sleeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sleeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sleeperCircuitHalfOpenMaxReq, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sleeperCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.SleeperCircuitEnabled = sleeperCircuitEnabled
	cfg.SleeperCircuitFailureCount = sleeperCircuitFailureCount
	cfg.SleeperCircuitOpenTimeout = sleeperCircuitOpenTimeout
	cfg.SleeperCircuitHalfOpenMaxReq = sleeperCircuitHalfOpenMaxReq

	trendingLookback, err := getEnvAsInt("SLEEPER_TRENDING_LOOKBACK_HOURS", 24)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TRENDING_LOOKBACK_HOURS: %w", err)
	}
	if trendingLookback < 1 {
		return Config{}, fmt.Errorf("SLEEPER_TRENDING_LOOKBACK_HOURS must be >= 1")
	}
	trendingLimit, err := getEnvAsInt("SLEEPER_TRENDING_LIMIT", 25)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TRENDING_LIMIT: %w", err)
	}
	if trendingLimit < 1 {
		return Config{}, fmt.Errorf("SLEEPER_TRENDING_LIMIT must be >= 1")
	}
	cfg.SleeperTrendingLookbackHours = trendingLookback
	cfg.SleeperTrendingLimit = trendingLimit

	cfg.RankingsBaseURL = strings.TrimRight(getEnv("RANKINGS_BASE_URL", "https://api.fantasypros.com/public/v2/json/nfl"), "/")
	cfg.RankingsAPIKey = strings.TrimSpace(getEnv("RANKINGS_API_KEY", ""))
	rankingsTimeout, err := time.ParseDuration(getEnv("RANKINGS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RANKINGS_TIMEOUT: %w", err)
	}
	if rankingsTimeout <= 0 {
		return Config{}, fmt.Errorf("RANKINGS_TIMEOUT must be > 0")
	}
	cfg.RankingsTimeout = rankingsTimeout
	cfg.RankingsFormat = getEnv("RANKINGS_FORMAT", "half-ppr")

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.UptraceLogsEnabled = uptraceLogsEnabled

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate

	return cfg, nil
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
