package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

func (a *AppConf) PortString() string { return fmt.Sprintf("%d", a.Port) }

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled is false when no brokers are configured; the event export is
// optional and the send path works without it.
func (k *KafkaConf) Enabled() bool { return len(k.Brokers) > 0 }

type JWTConf struct {
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
}

type S3Conf struct {
	Region     string `mapstructure:"region"`
	Bucket     string `mapstructure:"bucket"`
	Endpoint   string `mapstructure:"endpoint"`
	PublicRead bool   `mapstructure:"public_read"`
	PresignTTL int    `mapstructure:"presign_ttl_seconds"`
}

type PresenceConf struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Config struct {
	App      AppConf      `mapstructure:"app"`
	Mongo    MongoConf    `mapstructure:"mongodb"`
	Redis    RedisConf    `mapstructure:"redis"`
	Kafka    KafkaConf    `mapstructure:"kafka"`
	JWT      JWTConf      `mapstructure:"jwt"`
	S3       S3Conf       `mapstructure:"s3"`
	Presence PresenceConf `mapstructure:"presence"`
	Log      struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
	PresenceTTL     time.Duration
	PresignTTL      time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.JWT.TTLMinutes == 0 {
		cfg.JWT.TTLMinutes = 60 * 24
	}
	if cfg.Presence.TTLSeconds == 0 {
		cfg.Presence.TTLSeconds = 300
	}
	if cfg.S3.PresignTTL == 0 {
		cfg.S3.PresignTTL = 600
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	cfg.PresenceTTL = time.Duration(cfg.Presence.TTLSeconds) * time.Second
	cfg.PresignTTL = time.Duration(cfg.S3.PresignTTL) * time.Second

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.App.Port == 0 {
		return errors.New("app.port missing or invalid")
	}
	if cfg.Mongo.URI == "" {
		return errors.New("mongodb.uri missing")
	}
	if cfg.Mongo.Database == "" {
		return errors.New("mongodb.database missing")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("redis.addr missing")
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret missing")
	}
	if cfg.S3.Bucket == "" {
		return errors.New("s3.bucket missing")
	}
	return nil
}
