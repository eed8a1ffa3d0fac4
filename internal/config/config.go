package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AppName     string            `mapstructure:"APP_NAME"`
	AppVersion  string            `mapstructure:"APP_VERSION"`
	LogLevel    string            `mapstructure:"LOG_LEVEL"`
	API         APIConfig         `mapstructure:"API"`
	Session     SessionConfig     `mapstructure:"SESSION"`
	Backend     BackendConfig     `mapstructure:"BACKEND"`
	Responder   ResponderConfig   `mapstructure:"RESPONDER"`
	Database    DatabaseConfig    `mapstructure:"DATABASE"`
	Auth        AuthConfig        `mapstructure:"AUTH"`
	Credentials CredentialsConfig `mapstructure:"CREDENTIALS"`
	Redis       RedisConfig       `mapstructure:"REDIS"`
	Kafka       KafkaConfig       `mapstructure:"KAFKA"`
	Bridge      BridgeConfig      `mapstructure:"BRIDGE"`
}

// APIConfig 保存远程 REST 协作方的配置。
type APIConfig struct {
	BaseURL string        `mapstructure:"BASE_URL"`
	Timeout time.Duration `mapstructure:"TIMEOUT"`
	// DirectoryAuth 为 true 时，用户列表与搜索请求也携带 Bearer token。
	DirectoryAuth bool `mapstructure:"DIRECTORY_AUTH"`
}

// SessionConfig tunes the session controller.
type SessionConfig struct {
	CallTimeout       time.Duration `mapstructure:"CALL_TIMEOUT"`
	MinQueryLength    int           `mapstructure:"MIN_QUERY_LENGTH"`
	ResponderFallback string        `mapstructure:"RESPONDER_FALLBACK"`
}

// Backend modes.
const (
	BackendAPI    = "api"
	BackendDirect = "direct"
)

// BackendConfig selects which collaborator implementation serves the session.
type BackendConfig struct {
	Mode string `mapstructure:"MODE"` // "api" or "direct"
}

// Responder modes.
const (
	ResponderAPI      = "api"
	ResponderScripted = "scripted"
)

// ResponderConfig selects the automated responder channel.
type ResponderConfig struct {
	Mode string `mapstructure:"MODE"` // "api" or "scripted"
}

// DatabaseConfig holds configuration for the database used in direct mode.
type DatabaseConfig struct {
	Type     string `mapstructure:"TYPE"`
	Host     string `mapstructure:"HOST"`
	Port     int    `mapstructure:"PORT"`
	User     string `mapstructure:"USER"`
	Password string `mapstructure:"PASSWORD"`
	DBName   string `mapstructure:"DB_NAME"`
	SSLMode  string `mapstructure:"SSL_MODE"`
}

// AuthConfig holds configuration for issuing and validating JWTs in direct mode.
type AuthConfig struct {
	JWTSecretKey string        `mapstructure:"JWT_SECRET_KEY"`
	JWTExpiry    time.Duration `mapstructure:"JWT_EXPIRY"`
}

// Credential store kinds.
const (
	CredentialStoreFile  = "file"
	CredentialStoreRedis = "redis"
)

// CredentialsConfig 决定登录凭证在会话之间如何持久化。
type CredentialsConfig struct {
	Store    string `mapstructure:"STORE"` // "file" or "redis"
	FilePath string `mapstructure:"FILE_PATH"`
	RedisKey string `mapstructure:"REDIS_KEY"`
}

// RedisConfig holds configuration for Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"ADDR"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// KafkaConfig holds configuration for publishing session events.
type KafkaConfig struct {
	Enabled     bool     `mapstructure:"ENABLED"`
	Brokers     []string `mapstructure:"BROKERS"`
	ClientID    string   `mapstructure:"CLIENT_ID"`
	Protocol    string   `mapstructure:"PROTOCOL"`
	EventsTopic string   `mapstructure:"EVENTS_TOPIC"`
}

// BridgeConfig 保存本地展示层桥接 HTTP 服务的配置。
type BridgeConfig struct {
	Host         string        `mapstructure:"HOST"`
	Port         string        `mapstructure:"PORT"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
	CORS         CORSConfig    `mapstructure:"CORS"`
}

// CORSConfig holds configuration for CORS.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `mapstructure:"ALLOWED_METHODS"`
	AllowedHeaders   []string `mapstructure:"ALLOWED_HEADERS"`
	ExposedHeaders   []string `mapstructure:"EXPOSED_HEADERS"`
	AllowCredentials bool     `mapstructure:"ALLOW_CREDENTIALS"`
	MaxAge           int      `mapstructure:"MAX_AGE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "IM-Client")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("LOG_LEVEL", "info")

	// 远程 API
	v.SetDefault("API.BASE_URL", "http://localhost:5000")
	v.SetDefault("API.TIMEOUT", 20*time.Second)
	v.SetDefault("API.DIRECTORY_AUTH", false)

	// Session controller
	v.SetDefault("SESSION.CALL_TIMEOUT", 10*time.Second)
	v.SetDefault("SESSION.MIN_QUERY_LENGTH", 2)
	v.SetDefault("SESSION.RESPONDER_FALLBACK", "Sorry, the chatbot could not reply.")

	v.SetDefault("BACKEND.MODE", BackendAPI)
	v.SetDefault("RESPONDER.MODE", ResponderAPI)

	// Database Defaults (direct mode only)
	v.SetDefault("DATABASE.TYPE", "postgres")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "password")
	v.SetDefault("DATABASE.DB_NAME", "im_go_db")
	v.SetDefault("DATABASE.SSL_MODE", "disable")

	// Auth Defaults (direct mode only)
	v.SetDefault("AUTH.JWT_SECRET_KEY", "a_very_secret_key_that_should_be_changed")
	v.SetDefault("AUTH.JWT_EXPIRY", 24*time.Hour)

	// 凭证存储
	v.SetDefault("CREDENTIALS.STORE", CredentialStoreFile)
	v.SetDefault("CREDENTIALS.FILE_PATH", "./.imclient/credentials.json")
	v.SetDefault("CREDENTIALS.REDIS_KEY", "imclient:credentials")

	v.SetDefault("REDIS.ADDR", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)

	// Kafka Defaults
	v.SetDefault("KAFKA.ENABLED", false)
	v.SetDefault("KAFKA.BROKERS", []string{"localhost:9092"})
	v.SetDefault("KAFKA.CLIENT_ID", "im-client")
	v.SetDefault("KAFKA.PROTOCOL", "plaintext")
	v.SetDefault("KAFKA.EVENTS_TOPIC", "im-session-events")

	// Bridge Defaults
	v.SetDefault("BRIDGE.HOST", "127.0.0.1")
	v.SetDefault("BRIDGE.PORT", "8082")
	v.SetDefault("BRIDGE.READ_TIMEOUT", 30*time.Second)
	v.SetDefault("BRIDGE.WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("BRIDGE.CORS.ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("BRIDGE.CORS.ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("BRIDGE.CORS.ALLOWED_HEADERS", []string{"Accept", "Content-Type"})
	v.SetDefault("BRIDGE.CORS.EXPOSED_HEADERS", []string{"Content-Length"})
	v.SetDefault("BRIDGE.CORS.ALLOW_CREDENTIALS", false)
	v.SetDefault("BRIDGE.CORS.MAX_AGE", 300) // 5 minutes

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// API.BASE_URL 可以通过 API_BASE_URL 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// 没有配置文件时使用默认值
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}
