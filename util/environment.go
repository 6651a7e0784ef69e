package util

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type replayServerEnvironment struct {
	ApiServerUrl string
	NatsUrl      string
	RedisHost    string
	RedisPort    string
	RedisPW      string
	RedisDB      string
	RestPort     string
	LogLevel     string
}

// Env is a helper object for accessing environment variables.
var Env = &replayServerEnvironment{
	ApiServerUrl: "API_SERVER_URL",
	NatsUrl:      "NATS_URL",
	RedisHost:    "REDIS_HOST",
	RedisPort:    "REDIS_PORT",
	RedisPW:      "REDIS_PW",
	RedisDB:      "REDIS_DB",
	RestPort:     "REST_PORT",
	LogLevel:     "LOG_LEVEL",
}

func (r *replayServerEnvironment) GetApiServerURL() string {
	url := os.Getenv(r.ApiServerUrl)
	if url == "" {
		return "http://localhost:9501"
	}
	return url
}

func (r *replayServerEnvironment) GetNatsURL() string {
	url := os.Getenv(r.NatsUrl)
	if url == "" {
		return "nats://localhost:4222"
	}
	return url
}

func (r *replayServerEnvironment) GetRedisHost() string {
	host := os.Getenv(r.RedisHost)
	if host == "" {
		return "localhost"
	}
	return host
}

func (r *replayServerEnvironment) GetRedisPort() int {
	portStr := os.Getenv(r.RedisPort)
	if portStr == "" {
		return 6379
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid Redis port [%s]. Using default port 6379", portStr)
		return 6379
	}
	return portNum
}

func (r *replayServerEnvironment) GetRedisPW() string {
	return os.Getenv(r.RedisPW)
}

func (r *replayServerEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(r.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid Redis db [%s]. Using default db 0", dbStr)
		return 0
	}
	return dbNum
}

func (r *replayServerEnvironment) GetRestPort() string {
	port := os.Getenv(r.RestPort)
	if port == "" {
		return "8080"
	}
	return port
}

func (r *replayServerEnvironment) GetZeroLogLogLevel() zerolog.Level {
	l := os.Getenv(r.LogLevel)
	switch l {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
