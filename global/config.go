package global

import (
	"os"
	"strconv"
	"time"

	"ChatGo/tools/ids"
)

// AppConfig holds everything the process needs. Values come from ENV with
// local-dev defaults, same knobs across the HTTP layer and the gateway.
type AppConfig struct {
	Port    string
	EnvMode string // DEVELOPMENT / PRODUCTION

	MongoURI string
	MongoDB  string

	RedisAddr     string // empty disables the presence mirror
	RedisPassword string
	RedisDB       int

	JWTSecret []byte
	TokenTTL  time.Duration

	NodeID int64 // snowflake node

	FanoutWorkers int
	SendQueueSize int
}

var conf *AppConfig

// Load reads the configuration once; later calls return the same instance.
func Load() *AppConfig {
	if conf != nil {
		return conf
	}
	conf = &AppConfig{
		Port:          envOr("PORT", "3000"),
		EnvMode:       envOr("ENV_MODE", "PRODUCTION"),
		MongoURI:      envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       envOr("MONGO_DB", "chatgo"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envOrInt("REDIS_DB", 0),
		JWTSecret:     []byte(envOr("JWT_SECRET", "randomSecrectText")),
		TokenTTL:      time.Duration(envOrInt("TOKEN_TTL_DAYS", 15)) * 24 * time.Hour,
		NodeID:        int64(envOrInt("NODE_ID", 1)),
		FanoutWorkers: envOrInt("FANOUT_WORKERS", 4),
		SendQueueSize: envOrInt("SEND_QUEUE_SIZE", 256),
	}
	return conf
}

func GetJwtSecret() []byte {
	return Load().JWTSecret
}

func ConfigIds() {
	ids.SetNodeID(Load().NodeID)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
