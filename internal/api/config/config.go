package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	cfg, err := Load("./configs")
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 读取 path 下的 config.yaml，环境变量 MURMUR_* 覆盖同名配置
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("murmur")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5)
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "murmur")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("minio.bucket", "murmur-media")
	v.SetDefault("redis.password", "")
	v.SetDefault("minio.internal_endpoint", "")
	v.SetDefault("minio.external_endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "murmur")
	v.SetDefault("jwt.expiry_hour", 24)
	v.SetDefault("upload.temp_dir", "./public/temp")
	v.SetDefault("upload.max_age_minutes", 60)
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("media.max_image_dimension", 2048)
	v.SetDefault("events.driver", "none")
	v.SetDefault("kafka.topic", "murmur.posts")
	v.SetDefault("kafka.sasl.username", "")
	v.SetDefault("kafka.sasl.password", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject_prefix", "post")
	v.SetDefault("logstash.address", "")
	v.SetDefault("logstash.token", "")
	v.SetDefault("cron.temp_cleanup_spec", "@every 30m")
}
