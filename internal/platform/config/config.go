package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Client   ClientConfig   `mapstructure:"client"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// 支持的存储后端
const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了PostgreSQL的配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// DynamoDBConfig 定义了DynamoDB的配置
// Endpoint 为空时使用AWS默认端点，本地开发可指向 dynamodb-local
type DynamoDBConfig struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	EntriesTable  string `mapstructure:"entriesTable"`
	CommentsTable string `mapstructure:"commentsTable"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig 定义了日志相关的配置
type LogConfig struct {
	Env string `mapstructure:"env"`
}

// 本地缓存后端
const (
	CacheFile  = "file"
	CacheRedis = "redis"
)

// ClientConfig 定义了命令行客户端的配置
type ClientConfig struct {
	BaseURL  string `mapstructure:"baseURL"`
	Cache    string `mapstructure:"cache"`
	CacheDir string `mapstructure:"cacheDir"`
	Profile  string `mapstructure:"profile"`
}

// setDefaults 为所有配置项设置默认值，使得没有配置文件时也能启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", DriverSqlite)
	v.SetDefault("database.sqlite.path", "keluhkesah.db")
	v.SetDefault("database.dynamodb.region", "ap-southeast-1")
	v.SetDefault("database.dynamodb.entriesTable", "keluhkesah")
	v.SetDefault("database.dynamodb.commentsTable", "keluhkesah_comments")
	v.SetDefault("database.redis.address", "localhost:6379")

	v.SetDefault("log.env", "dev")

	v.SetDefault("client.baseURL", "http://localhost:8080")
	v.SetDefault("client.cache", CacheFile)
	v.SetDefault("client.cacheDir", ".keluhkesah")
	v.SetDefault("client.profile", "default")
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件，找不到时使用默认值
func LoadConfig() (*Config, error) {
	// 0. 先加载 .env（可选），其中的变量随后会被 AutomaticEnv 读到
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 5. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// 6. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSqlite, DriverPostgres, DriverDynamoDB:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	switch c.Client.Cache {
	case CacheFile, CacheRedis:
	default:
		return fmt.Errorf("不支持的本地缓存后端: %q", c.Client.Cache)
	}
	return nil
}
