package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the top-level process configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Delivery  DeliveryConfig  `mapstructure:"delivery"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// MongoConfig holds submission archive settings.
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// RedisConfig holds dedup cache settings.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// QueueConfig holds the durable retry queue settings.
type QueueConfig struct {
	Path            string `mapstructure:"path"`
	IntervalSeconds int    `mapstructure:"interval_seconds"`
}

// DeliveryConfig holds the outbound mail-relay settings. With no API key
// the relay runs in log-only mode.
type DeliveryConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	APIKey    string `mapstructure:"api_key"`
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// AuthConfig holds admin authentication settings. AdminPasswordHash is a
// bcrypt hash, never the plain password.
type AuthConfig struct {
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	JWTSecret         string `mapstructure:"jwt_secret"`
}

// DocumentsConfig points at the questionnaire configuration documents.
type DocumentsConfig struct {
	Questionnaire string `mapstructure:"questionnaire"`
	Scoring       string `mapstructure:"scoring"`
	Calendar      string `mapstructure:"calendar"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "pathfinder")

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("queue.path", "data/submission_queue.db")
	v.SetDefault("queue.interval_seconds", 60)

	v.SetDefault("delivery.endpoint", "https://api.resend.com/emails")
	v.SetDefault("delivery.timeout_ms", 10000)

	v.SetDefault("auth.admin_username", "admin")

	v.SetDefault("documents.questionnaire", "config/questionnaire.yaml")
	v.SetDefault("documents.scoring", "config/scoring.yaml")
	v.SetDefault("documents.calendar", "config/academic_calendar.yaml")

	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // MB
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7) // days
	v.SetDefault("logging.compress", true)
}

// Load reads configuration from config/config.yaml, environment variables
// (PATHFINDER_*) and defaults, and watches the file for changes.
func Load(configDir string, log *zap.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PATHFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file is fine; defaults and env vars carry it.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading", zap.String("file", e.Name))
		if err := v.Unmarshal(cfg); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
		}
	})

	return cfg, nil
}
