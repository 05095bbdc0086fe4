package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

// MysqlConfig 存储数据库连接信息
type MysqlConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
}

type Config struct {
	Mysql      MysqlConfig
	ServerPort int32
	Loglevel   string
}

var (
	config *Config
)

// LoadConfig 从环境变量加载配置，.env 文件仅用于本地开发
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded: " + err.Error())
	}

	config = &Config{
		Mysql: MysqlConfig{
			Username: getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			DBName:   getEnv("DB_NAME", "feedback"),
		},
		ServerPort: int32(getEnvInt("SERVER_PORT", 5000)),
		Loglevel:   getEnv("LOG_LEVEL", "info"),
	}
}

func GetConfig() *Config {
	if config == nil {
		LoadConfig()
	}
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in env, fallback to default", "key", key, "value", v)
		return fallback
	}
	return n
}
