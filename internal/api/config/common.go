package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Media    MediaConfig    `mapstructure:"media"`
	Events   EventsConfig   `mapstructure:"events"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Nats     NatsConfig     `mapstructure:"nats"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// MongoConfig 文档库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// JWTConfig 令牌签发配置
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	ExpiryHour int    `mapstructure:"expiry_hour"`
}

// UploadConfig 本地临时上传目录
type UploadConfig struct {
	TempDir       string `mapstructure:"temp_dir"`
	MaxAgeMinutes int    `mapstructure:"max_age_minutes"`
	MaxSizeMB     int64  `mapstructure:"max_size_mb"`
}

// MediaConfig 媒体处理
type MediaConfig struct {
	MaxImageDimension int `mapstructure:"max_image_dimension"`
}

// EventsConfig 帖子事件投递方式: none | kafka | nats
type EventsConfig struct {
	Driver string `mapstructure:"driver"`
}

type KafkaConfig struct {
	Brokers []string   `mapstructure:"brokers"`
	Topic   string     `mapstructure:"topic"`
	Sasl    SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type NatsConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type CronConfig struct {
	TempCleanupSpec string `mapstructure:"temp_cleanup_spec"`
}
