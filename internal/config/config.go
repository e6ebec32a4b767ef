package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zhouzirui/employees-api/internal/logging"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Store  StoreConfig
	Events EventsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Log: logCfg, Store: store, Events: events}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// loadServerConfig 解析服务器监听地址与跨域来源。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origins := parseListEnv("CORS_ALLOWED_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, CORSOrigins: origins}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, CORSOrigins: origins}, nil
}

// LogConfig 描述日志级别与格式。
type LogConfig struct {
	Level  logging.Level
	Format logging.Format
}

func loadLogConfig() (LogConfig, error) {
	level, err := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}

	format, err := logging.ParseFormat(os.Getenv("LOG_FORMAT"))
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value: %w", err)
	}

	return LogConfig{Level: level, Format: format}, nil
}

// StoreConfig 描述员工存储的初始化方式。
type StoreConfig struct {
	Seed bool
}

func loadStoreConfig() (StoreConfig, error) {
	seed, err := parseBoolEnv("SEED_DATA", false)
	if err != nil {
		return StoreConfig{}, err
	}
	return StoreConfig{Seed: seed}, nil
}

// EventsConfig 描述变更推送配置。
type EventsConfig struct {
	Enabled bool
	Buffer  int
}

func loadEventsConfig() (EventsConfig, error) {
	enabled, err := parseBoolEnv("EVENTS_ENABLED", true)
	if err != nil {
		return EventsConfig{}, err
	}

	buffer := 16
	if override, err := parseOptionalIntEnv("EVENTS_BUFFER"); err != nil {
		return EventsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			buffer = 1
		} else {
			buffer = *override
		}
	}

	return EventsConfig{Enabled: enabled, Buffer: buffer}, nil
}

func parseListEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
