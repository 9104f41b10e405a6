package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config touchbase-data（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Notifier NotifierConfig
	MQTT     MQTTConfig
	// DefaultUserID 请求未携带 X-User-Id 时使用的用户
	DefaultUserID string
	// ProgressCacheTTL 目标进度缓存时长（看板 30s~5min 轮询场景）
	ProgressCacheTTL time.Duration
	// NotificationStream 通知事件发布的 Redis Stream 名称
	NotificationStream string
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// NotifierConfig 外部通知投递服务配置
type NotifierConfig struct {
	BaseURL string // 投递服务地址（实际 SMS/Email 发送由它负责）
	Timeout time.Duration
}

// MQTTConfig MQTT 配置（外部调度器经 MQTT 触发早/晚提醒，默认禁用）
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: if DB is unavailable, touchbase-data
	// will fall back to in-memory repositories.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "touchbase")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	// 通知投递服务配置
	cfg.Notifier.BaseURL = getEnv("NOTIFIER_BASE_URL", "http://localhost:8090")
	cfg.Notifier.Timeout = time.Duration(parseInt(getEnv("NOTIFIER_TIMEOUT_SECONDS", "10"), 10)) * time.Second

	// MQTT 配置（外部调度器触发提醒，默认禁用）
	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "touchbase-data-reminder")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "touchbase/reminders")

	cfg.DefaultUserID = getEnv("DEFAULT_USER_ID", "00000000-0000-0000-0000-000000000001")
	cfg.ProgressCacheTTL = time.Duration(parseInt(getEnv("PROGRESS_CACHE_TTL_SECONDS", "30"), 30)) * time.Second
	cfg.NotificationStream = getEnv("NOTIFICATION_STREAM", "touchbase:notifications")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
